package repositories

import (
	"strings"

	"go.uber.org/zap"
)

// logQuery logs a statement collapsed onto one line together with its
// arguments, result and error.
func logQuery(log *zap.SugaredLogger, query string, args []any, result any, err error) {
	log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
