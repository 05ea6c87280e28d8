package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	httpctrl "github.com/dealradar/dealradar/pkg/controller/http"
	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/dealradar/dealradar/pkg/repository/memory"
	"github.com/dealradar/dealradar/pkg/usecase"
	"github.com/m-mizutani/gt"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func daysFromNow(n int) *time.Time {
	t := testNow.Add(time.Duration(n) * 24 * time.Hour)
	return &t
}

func intPtr(v int) *int { return &v }

// mockStrategyGenerator is a mock implementation of interfaces.StrategyGenerator
type mockStrategyGenerator struct {
	strategies []string
	err        error
}

func (m *mockStrategyGenerator) GenerateStrategies(ctx context.Context, req *model.StrategyRequest) ([]string, error) {
	return m.strategies, m.err
}

// mockDigest counts digest posts
type mockDigest struct {
	calls atomic.Int32
}

func (m *mockDigest) Post(ctx context.Context) error {
	m.calls.Add(1)
	return nil
}

func newTestServer(t *testing.T, ucOpts []usecase.Option, opts ...httpctrl.Options) *httptest.Server {
	t.Helper()

	repo := memory.New()
	gt.NoError(t, repo.Seed(context.Background(), []*model.Opportunity{
		{ID: "opp-a", Name: "Acme", Stage: types.OpportunityStageEvaluate, UpdatedAt: daysAgo(25), CloseDate: daysFromNow(90)},
		{ID: "opp-b", Name: "Globex", Stage: types.OpportunityStageDiscover, UpdatedAt: daysAgo(20), CloseDate: daysFromNow(100), Probability: intPtr(15)},
		{ID: "opp-c", Name: "Initech", Stage: types.OpportunityStageCloseWon, UpdatedAt: daysAgo(1), CloseDate: daysFromNow(40)},
		{ID: "opp-d", Name: "Umbrella", Stage: types.OpportunityStageEvaluate, UpdatedAt: daysAgo(40), CloseDate: daysFromNow(10)},
	})).Required()

	ucOpts = append([]usecase.Option{usecase.WithClock(func() time.Time { return testNow })}, ucOpts...)
	srv, err := httpctrl.New(usecase.New(repo, ucOpts...), opts...)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		gt.Value(t, resp.Header.Get("Content-Type")).Equal("application/json")
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(out)).Required()
	}
	return resp.StatusCode
}

type radarRow struct {
	Rank        int               `json:"rank"`
	Opportunity model.Opportunity `json:"opportunity"`
	RiskScore   int               `json:"riskScore"`
	RiskReasons []string          `json:"riskReasons"`
}

type radarBody struct {
	Total int        `json:"total"`
	Risks []radarRow `json:"risks"`
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	var body map[string]string
	gt.Value(t, getJSON(t, ts.URL+"/health", &body)).Equal(http.StatusOK)
	gt.Value(t, body["status"]).Equal("ok")
}

func TestRiskRadar(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("ranked radar", func(t *testing.T) {
		var body radarBody
		gt.Value(t, getJSON(t, ts.URL+"/api/risk-radar", &body)).Equal(http.StatusOK)
		gt.Value(t, body.Total).Equal(3)
		gt.Array(t, body.Risks).Length(3).Required()

		gt.Value(t, body.Risks[0].Rank).Equal(1)
		gt.Value(t, body.Risks[0].Opportunity.ID).Equal(model.OpportunityID("opp-d"))
		gt.Value(t, body.Risks[0].RiskScore).Equal(7)
		gt.Value(t, body.Risks[1].Opportunity.ID).Equal(model.OpportunityID("opp-b"))
		gt.Value(t, body.Risks[1].RiskReasons).Equal([]string{
			usecase.ReasonNoRecentActivity,
			usecase.ReasonDiscoveryStalled,
			usecase.ReasonLowWinProbability,
		})
		gt.Value(t, body.Risks[2].Opportunity.ID).Equal(model.OpportunityID("opp-a"))
	})

	t.Run("stage filter and limit", func(t *testing.T) {
		var body radarBody
		gt.Value(t, getJSON(t, ts.URL+"/api/risk-radar?stage=EVALUATE&limit=1", &body)).Equal(http.StatusOK)
		gt.Value(t, body.Total).Equal(2)
		gt.Array(t, body.Risks).Length(1).Required()
		gt.Value(t, body.Risks[0].Opportunity.ID).Equal(model.OpportunityID("opp-d"))
	})

	t.Run("invalid stage", func(t *testing.T) {
		gt.Value(t, getJSON(t, ts.URL+"/api/risk-radar?stage=WON", nil)).Equal(http.StatusBadRequest)
	})

	t.Run("invalid limit", func(t *testing.T) {
		gt.Value(t, getJSON(t, ts.URL+"/api/risk-radar?limit=-1", nil)).Equal(http.StatusBadRequest)
	})
}

func TestOpportunityRisk(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("at risk", func(t *testing.T) {
		var body struct {
			Opportunity model.Opportunity `json:"opportunity"`
			Risk        *model.RiskFactor `json:"risk"`
		}
		gt.Value(t, getJSON(t, ts.URL+"/api/opportunities/opp-b/risk", &body)).Equal(http.StatusOK)
		gt.Value(t, body.Opportunity.Name).Equal("Globex")
		gt.Value(t, body.Risk).NotNil().Required()
		gt.Value(t, body.Risk.RiskScore).Equal(6)
	})

	t.Run("healthy", func(t *testing.T) {
		var body struct {
			Risk *model.RiskFactor `json:"risk"`
		}
		gt.Value(t, getJSON(t, ts.URL+"/api/opportunities/opp-c/risk", &body)).Equal(http.StatusOK)
		gt.Value(t, body.Risk).Nil()
	})

	t.Run("not found", func(t *testing.T) {
		gt.Value(t, getJSON(t, ts.URL+"/api/opportunities/missing/risk", nil)).Equal(http.StatusNotFound)
	})
}

func TestRiskCategories(t *testing.T) {
	ts := newTestServer(t, nil)

	var body struct {
		Summary    model.ImpactSummary        `json:"summary"`
		Categories []*model.RiskCategoryEntry `json:"categories"`
	}
	gt.Value(t, getJSON(t, ts.URL+"/api/risk-categories", &body)).Equal(http.StatusOK)
	gt.Array(t, body.Categories).Length(6)
	gt.Value(t, body.Summary.Total).Equal(6)
}

type mitigationsBody struct {
	Category   string   `json:"category"`
	Strategies []string `json:"strategies"`
	Advisory   bool     `json:"advisory"`
}

func TestMitigations(t *testing.T) {
	catalog := model.DefaultStrategyCatalog()

	t.Run("falls back to catalog when generator fails", func(t *testing.T) {
		ts := newTestServer(t, []usecase.Option{
			usecase.WithStrategyGenerator(&mockStrategyGenerator{err: errors.New("down")}),
		})

		var body mitigationsBody
		gt.Value(t, getJSON(t, ts.URL+"/api/risk-categories/timing/mitigations", &body)).Equal(http.StatusOK)
		gt.Value(t, body.Strategies).Equal(catalog.Get(types.RiskCategoryTiming))
	})

	t.Run("uses generated strategies", func(t *testing.T) {
		ts := newTestServer(t, []usecase.Option{
			usecase.WithStrategyGenerator(&mockStrategyGenerator{strategies: []string{"Run a pilot"}}),
		})

		var body mitigationsBody
		gt.Value(t, getJSON(t, ts.URL+"/api/risk-categories/technical/mitigations", &body)).Equal(http.StatusOK)
		gt.Value(t, body.Strategies).Equal([]string{"Run a pilot"})
		gt.Bool(t, body.Advisory).False()
	})

	t.Run("non mitigatable category is advisory", func(t *testing.T) {
		ts := newTestServer(t, nil)

		var body mitigationsBody
		gt.Value(t, getJSON(t, ts.URL+"/api/risk-categories/financial/mitigations", &body)).Equal(http.StatusOK)
		gt.Bool(t, body.Advisory).True()
	})

	t.Run("unknown category returns empty list", func(t *testing.T) {
		ts := newTestServer(t, nil)

		var body mitigationsBody
		gt.Value(t, getJSON(t, ts.URL+"/api/risk-categories/legal/mitigations", &body)).Equal(http.StatusOK)
		gt.Value(t, body.Category).Equal("legal")
		gt.B(t, body.Strategies != nil).True()
		gt.Array(t, body.Strategies).Length(0)
	})
}

func TestRiskDashboard(t *testing.T) {
	ts := newTestServer(t, []usecase.Option{
		usecase.WithStrategyGenerator(&mockStrategyGenerator{strategies: []string{"Follow up"}}),
	})

	var body model.RiskDashboard
	gt.Value(t, getJSON(t, ts.URL+"/api/risk-dashboard", &body)).Equal(http.StatusOK)
	gt.Array(t, body.Categories).Length(6).Required()
	gt.Value(t, body.Summary.Total).Equal(6)
	for _, c := range body.Categories {
		gt.Value(t, c.Strategies[len(c.Strategies)-1]).Equal("Follow up")
	}
}

func TestGenerateStrategies(t *testing.T) {
	reqBody := []byte(`{"riskFactors":[{"category":"engagement","title":"Low Engagement","impact":"high","weight":0.8,"riskScore":3}]}`)

	t.Run("not configured", func(t *testing.T) {
		ts := newTestServer(t, nil)
		resp, err := http.Post(ts.URL+"/api/generate-strategies", "application/json", bytes.NewReader(reqBody))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusServiceUnavailable)
	})

	t.Run("serves generator contract", func(t *testing.T) {
		ts := newTestServer(t, nil, httpctrl.WithStrategyGenerator(&mockStrategyGenerator{strategies: []string{"Call the champion"}}))
		resp, err := http.Post(ts.URL+"/api/generate-strategies", "application/json", bytes.NewReader(reqBody))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var body model.StrategyResponse
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
		gt.Value(t, body.Strategies).Equal([]string{"Call the champion"})
	})

	t.Run("empty generated list", func(t *testing.T) {
		ts := newTestServer(t, nil, httpctrl.WithStrategyGenerator(&mockStrategyGenerator{}))
		resp, err := http.Post(ts.URL+"/api/generate-strategies", "application/json", bytes.NewReader(reqBody))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()

		var raw map[string]json.RawMessage
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&raw)).Required()
		gt.Value(t, string(raw["strategies"])).Equal("[]")
	})

	t.Run("bad request", func(t *testing.T) {
		ts := newTestServer(t, nil, httpctrl.WithStrategyGenerator(&mockStrategyGenerator{}))
		for _, body := range []string{`{`, `{"riskFactors":[]}`} {
			resp, err := http.Post(ts.URL+"/api/generate-strategies", "application/json", bytes.NewReader([]byte(body)))
			gt.NoError(t, err).Required()
			resp.Body.Close()
			gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
		}
	})

	t.Run("generator failure", func(t *testing.T) {
		ts := newTestServer(t, nil, httpctrl.WithStrategyGenerator(&mockStrategyGenerator{err: errors.New("quota")}))
		resp, err := http.Post(ts.URL+"/api/generate-strategies", "application/json", bytes.NewReader(reqBody))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadGateway)
	})
}

func TestDigest(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		ts := newTestServer(t, nil)
		resp, err := http.Post(ts.URL+"/api/risk-radar/digest", "application/json", nil)
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusServiceUnavailable)
	})

	t.Run("dispatches digest", func(t *testing.T) {
		digest := &mockDigest{}
		ts := newTestServer(t, nil, httpctrl.WithDigest(digest))
		resp, err := http.Post(ts.URL+"/api/risk-radar/digest", "application/json", nil)
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusAccepted)

		deadline := time.Now().Add(time.Second)
		for digest.calls.Load() == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		gt.Value(t, digest.calls.Load()).Equal(int32(1))
	})
}

func TestNew_RequiresUseCases(t *testing.T) {
	_, err := httpctrl.New(nil)
	gt.Error(t, err)
}
