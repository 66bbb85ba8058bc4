package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/festy23/team_tasks/pkg/reporter"
)

type capturingReporter struct {
	errs []error
	tags []map[string]string
}

func (r *capturingReporter) Report(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func (r *capturingReporter) Flush(time.Duration) bool { return true }

func setupRecoveryRouter(logger *zap.SugaredLogger, rep reporter.Reporter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logger, rep))
	r.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})
	r.GET("/panic-error", func(c *gin.Context) {
		panic(errors.New("boom"))
	})
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func TestRecovery_Middleware(t *testing.T) {
	rep := &capturingReporter{}
	router := setupRecoveryRouter(zaptest.NewLogger(t).Sugar(), rep)

	t.Run("recovers from panic", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/panic", nil)

		assert.NotPanics(t, func() {
			router.ServeHTTP(w, req)
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`, w.Body.String())
	})

	t.Run("normal request works", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	require.Len(t, rep.errs, 1)
	assert.EqualError(t, rep.errs[0], "panic: test panic")
	assert.Equal(t, "http", rep.tags[0]["component"])
	assert.Equal(t, "/panic", rep.tags[0]["route"])
}

func TestRecovery_ReportsPanickedError(t *testing.T) {
	rep := &capturingReporter{}
	router := setupRecoveryRouter(zaptest.NewLogger(t).Sugar(), rep)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic-error", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, rep.errs, 1)
	assert.EqualError(t, rep.errs[0], "boom")
}

func TestRecovery_NilReporter(t *testing.T) {
	router := setupRecoveryRouter(zaptest.NewLogger(t).Sugar(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
