package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"tms-insights-go/internal/analysis"
	"tms-insights-go/internal/export"
	"tms-insights-go/internal/logger"
	"tms-insights-go/internal/types"
	"tms-insights-go/internal/workbook"
)

const maxUploadBytes = 32 << 20

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New().WithField("service", "tms-insights-go")
	log.Info("starting service")

	cacheSize, _ := strconv.Atoi(envOr("CACHE_SIZE", "16"))
	analyzer := analysis.New(cacheSize)

	// current holds the most recently analyzed workbook; handlers run
	// concurrently so access goes through the mutex
	var (
		mu      sync.RWMutex
		current *types.Result
	)
	setCurrent := func(res *types.Result) {
		mu.Lock()
		current = res
		mu.Unlock()
	}
	getCurrent := func() *types.Result {
		mu.RLock()
		defer mu.RUnlock()
		return current
	}

	// optional preload so the GET endpoints have data before the first upload
	workbookPath := envOr("WORKBOOK_PATH", "report raw data.xls")
	if data, err := os.ReadFile(workbookPath); err != nil {
		log.WithField("workbook_path", workbookPath).Warn("no workbook preloaded, starting empty")
	} else if res, err := analyzer.Analyze(data); err != nil {
		// a bad file on disk degrades to empty state, same as no file
		log.WithError(err).Warn("preload workbook unreadable, starting empty")
	} else {
		setCurrent(res)
		log.WithField("workbook_path", workbookPath).
			WithField("datasets", len(res.Datasets.Map())).
			Info("workbook preloaded")
	}

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// analyze endpoint: workbook bytes in, dataset mapping + KPIs out
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analyze")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
		if err != nil {
			reqLog.WithError(err).Warn("failed to read upload")
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}

		start := time.Now()
		res, err := analyzer.Analyze(data)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("bytes", len(data)).Info("analysis finished")
		if err != nil {
			if errors.Is(err, workbook.ErrFileFormat) {
				reqLog.WithError(err).Warn("unsupported upload")
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			reqLog.WithError(err).Error("analysis failed")
			http.Error(w, "analysis failed", http.StatusInternalServerError)
			return
		}
		setCurrent(res)
		writeJSON(w, res)
	})

	// datasets of the most recently analyzed workbook
	mux.HandleFunc("/datasets", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).WithField("handler", "datasets").Info("datasets requested")
		res := getCurrent()
		if res == nil {
			http.Error(w, "no workbook analyzed yet", http.StatusNotFound)
			return
		}
		writeJSON(w, res.Datasets.Map())
	})

	// xlsx summary of the most recently analyzed workbook
	mux.HandleFunc("/report.xlsx", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "report")
		res := getCurrent()
		if res == nil {
			http.Error(w, "no workbook analyzed yet", http.StatusNotFound)
			return
		}
		data, err := export.Summary(res)
		if err != nil {
			reqLog.WithError(err).Error("report export failed")
			http.Error(w, "report export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="tms-summary.xlsx"`)
		w.Write(data)
		reqLog.WithField("bytes", len(data)).Info("report exported")
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
