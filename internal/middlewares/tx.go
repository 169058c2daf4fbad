package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
)

// TxMiddleware wraps an HTTP handler with a database transaction.
// The response is held back until the transaction is resolved: error statuses
// roll back, everything else commits, and a failed commit becomes a 500.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "request_id", RequestIDFromContext(r.Context()), "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			bw := &bufferedWriter{ResponseWriter: w}
			next.ServeHTTP(bw, r.WithContext(setTxToContext(r.Context(), tx)))

			if bw.status() >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "request_id", RequestIDFromContext(r.Context()), "error", err)
				}
				bw.flush()
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "request_id", RequestIDFromContext(r.Context()), "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			bw.flush()
		})
	}
}

// bufferedWriter holds the status and body until flush. Headers go straight
// to the underlying writer's map, which is not sent before WriteHeader.
type bufferedWriter struct {
	http.ResponseWriter
	code int
	body bytes.Buffer
}

func (bw *bufferedWriter) WriteHeader(code int) {
	if bw.code == 0 {
		bw.code = code
	}
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	if bw.code == 0 {
		bw.code = http.StatusOK
	}
	return bw.body.Write(b)
}

func (bw *bufferedWriter) status() int {
	if bw.code == 0 {
		return http.StatusOK
	}
	return bw.code
}

func (bw *bufferedWriter) flush() {
	bw.ResponseWriter.WriteHeader(bw.status())
	bw.ResponseWriter.Write(bw.body.Bytes())
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
