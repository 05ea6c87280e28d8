package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/dealradar/dealradar/pkg/usecase"
	"github.com/dealradar/dealradar/pkg/utils/async"
	"github.com/dealradar/dealradar/pkg/utils/errutil"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

// maxRequestSize caps request bodies accepted by the API
const maxRequestSize = 1 << 20

// radarEntry is a ranked risk radar row
type radarEntry struct {
	Rank int `json:"rank"`
	*model.RiskFactor
}

type riskRadarResponse struct {
	Total int          `json:"total"`
	Risks []radarEntry `json:"risks"`
}

// riskRadarHandler serves the ranked risk radar. Optional query parameters:
// stage filters by opportunity stage, limit caps the number of rows.
func (s *Server) riskRadarHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var opts []usecase.RiskRadarOption
	if stage := r.URL.Query().Get("stage"); stage != "" {
		opts = append(opts, usecase.WithStage(types.OpportunityStage(stage)))
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errutil.HandleHTTP(ctx, w, goerr.New("limit must be a non-negative integer", goerr.V("limit", v)), http.StatusBadRequest)
			return
		}
		limit = n
	}

	radar, err := s.uc.RiskRadar.GetRiskRadar(ctx, opts...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrInvalidStage) {
			status = http.StatusBadRequest
		}
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	resp := riskRadarResponse{
		Total: len(radar),
		Risks: make([]radarEntry, 0, len(radar)),
	}
	for i, f := range radar {
		if limit > 0 && i >= limit {
			break
		}
		resp.Risks = append(resp.Risks, radarEntry{Rank: i + 1, RiskFactor: f})
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// digestHandler triggers a radar digest in the background
func (s *Server) digestHandler(w http.ResponseWriter, r *http.Request) {
	if s.digest == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("radar digest is not configured"), http.StatusServiceUnavailable)
		return
	}

	async.Dispatch(r.Context(), "radar-digest", func(ctx context.Context) error {
		return s.digest.Post(ctx)
	})

	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
}

type opportunityRiskResponse struct {
	Opportunity *model.Opportunity `json:"opportunity"`
	Risk        *model.RiskFactor  `json:"risk"`
}

func (s *Server) opportunityRiskHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := model.OpportunityID(chi.URLParam(r, "id"))

	opp, factor, err := s.uc.RiskRadar.EvaluateOpportunityByID(ctx, id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrNotFound) {
			status = http.StatusNotFound
		}
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	writeJSON(w, r, http.StatusOK, opportunityRiskResponse{
		Opportunity: opp,
		Risk:        factor,
	})
}

type riskCategoriesResponse struct {
	Summary    model.ImpactSummary        `json:"summary"`
	Categories []*model.RiskCategoryEntry `json:"categories"`
}

func (s *Server) riskCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	entries := s.uc.Dashboard.Entries()
	writeJSON(w, r, http.StatusOK, riskCategoriesResponse{
		Summary:    usecase.SummarizeByImpact(entries),
		Categories: entries,
	})
}

type mitigationsResponse struct {
	Category   types.RiskCategory `json:"category"`
	Strategies []string           `json:"strategies"`
	Advisory   bool               `json:"advisory"`
}

// mitigationsHandler resolves strategies for one category. An unknown
// category is not an error and yields an empty list.
func (s *Server) mitigationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := types.RiskCategory(chi.URLParam(r, "category"))

	entry := s.uc.Dashboard.Entry(category)
	if entry == nil {
		logging.From(ctx).Debug("mitigations requested for unconfigured category", "category", category)
	}

	writeJSON(w, r, http.StatusOK, mitigationsResponse{
		Category:   category,
		Strategies: s.uc.Mitigation.Resolve(ctx, entry, category),
		Advisory:   entry != nil && !entry.IsMitigatable,
	})
}

func (s *Server) riskDashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dashboard, err := s.uc.Dashboard.GetRiskDashboard(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, dashboard)
}

// generateStrategiesHandler serves the external generator contract so that
// another deployment can use this one as its strategy generator
func (s *Server) generateStrategiesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.generator == nil {
		errutil.HandleHTTP(ctx, w, goerr.New("strategy generator is not configured"), http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	var req model.StrategyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid strategy request"), http.StatusBadRequest)
		return
	}
	if len(req.RiskFactors) == 0 {
		errutil.HandleHTTP(ctx, w, goerr.New("riskFactors must not be empty"), http.StatusBadRequest)
		return
	}

	strategies, err := s.generator.GenerateStrategies(ctx, &req)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to generate strategies"), http.StatusBadGateway)
		return
	}
	if strategies == nil {
		strategies = []string{}
	}

	writeJSON(w, r, http.StatusOK, model.StrategyResponse{Strategies: strategies})
}
