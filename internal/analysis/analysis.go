// Package analysis turns one uploaded TMS workbook into the full dataset
// mapping and every derived dashboard view. Processing is one-shot and
// side-effect free: it either completes for the whole file or fails with a
// format error, and the same bytes always produce the same result.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"tms-insights-go/internal/dataset"
	"tms-insights-go/internal/lanes"
	"tms-insights-go/internal/logger"
	"tms-insights-go/internal/types"
	"tms-insights-go/internal/volume"
	"tms-insights-go/internal/workbook"
)

const defaultCacheSize = 16

// Analyzer parses workbooks and memoizes results by content hash. Since the
// transformation is pure, a cached entry can never go stale; the cache is
// bounded and evicts by least recent access.
type Analyzer struct {
	log   *logrus.Entry
	cache *lru.Cache[string, *types.Result]
}

func New(cacheSize int) *Analyzer {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, _ := lru.New[string, *types.Result](cacheSize)
	return &Analyzer{
		log:   logger.New().WithField("component", "analysis"),
		cache: cache,
	}
}

// Analyze parses the uploaded bytes and computes all derived views. The only
// error it returns is a whole-file format failure; finer-grained anomalies
// degrade to omitted datasets or null cells.
func (a *Analyzer) Analyze(data []byte) (*types.Result, error) {
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if res, ok := a.cache.Get(key); ok {
		a.log.WithField("content_hash", key[:12]).Debug("analysis cache hit")
		return res, nil
	}

	wb, err := workbook.Open(data)
	if err != nil {
		return nil, err
	}
	res := AnalyzeWorkbook(wb)
	a.cache.Add(key, res)
	a.log.WithField("content_hash", key[:12]).
		WithField("datasets", len(res.Datasets.Map())).
		Info("workbook analyzed")
	return res, nil
}

// AnalyzeWorkbook runs the pipeline over an already-open workbook.
func AnalyzeWorkbook(wb *workbook.Workbook) *types.Result {
	res := &types.Result{Datasets: buildDatasets(wb)}
	d := &res.Datasets

	res.Overview = overview(d)
	if d.OTP != nil {
		res.OTP = otpAnalysis(d.OTP)
	}
	if d.CostSales != nil {
		res.Financial = financialAnalysis(d.CostSales)
	}
	if d.ServiceVolumes != nil || d.CountryVolumes != nil {
		res.Volumes = &types.VolumeAnalysis{
			ServiceShares: shares(d.ServiceVolumes),
			CountryShares: shares(d.CountryVolumes),
		}
	}
	if d.Lanes != nil {
		res.Network = networkAnalysis(d.Lanes)
	}
	return res
}

// buildDatasets produces the per-sheet dataset mapping. Each sheet is
// independent: an absent sheet leaves its field nil, nothing fails.
func buildDatasets(wb *workbook.Workbook) types.Datasets {
	var d types.Datasets

	if s, ok := wb.Sheet(dataset.SheetRawData); ok {
		d.RawData = workbook.TableOf(s)
	}
	if s, ok := wb.Sheet(dataset.SheetOTP); ok {
		d.OTP = dataset.NormalizeOTP(s)
	}
	if s, ok := wb.Sheet(dataset.SheetVolume); ok {
		d.ServiceVolumes, d.CountryVolumes = volume.Extract(workbook.TableOf(s))
	}
	if s, ok := wb.Sheet(dataset.SheetLanes); ok {
		d.Lanes = lanes.FromTable(workbook.TableOf(s))
	}
	if s, ok := wb.Sheet(dataset.SheetCostSales); ok {
		d.CostSales = dataset.NormalizeCostSales(s)
	}
	return d
}
