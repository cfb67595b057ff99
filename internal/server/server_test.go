package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agriplan/cropalloc/internal/logging"
	"github.com/agriplan/cropalloc/internal/planner"
	"github.com/agriplan/cropalloc/pkg/core"
)

func scenarioBody(mutate func(map[string]any)) *bytes.Buffer {
	doc := map[string]any{
		"formula":         "penalty",
		"weights":         map[string]any{"profit": 1.0},
		"laborBudget":     100000,
		"equipmentBudget": 50000,
		"crops": []map[string]any{
			{"name": "wheat", "yieldTonsPerHa": 4, "pricePerTon": 2000, "waterPerHa": 1000, "laborDaysPerHa": 20, "equipmentHoursPerHa": 8},
			{"name": "rice", "yieldTonsPerHa": 5, "pricePerTon": 2000, "waterPerHa": 2000, "laborDaysPerHa": 30, "equipmentHoursPerHa": 10},
		},
		"fields": []map[string]any{
			{"name": "plot", "areaHa": 1000, "waterBudget": 1500000, "rainfallIndex": 0.5},
		},
	}
	if mutate != nil {
		mutate(doc)
	}
	body, err := json.Marshal(doc)
	Expect(err).NotTo(HaveOccurred())
	return bytes.NewBuffer(body)
}

var _ = Describe("Server", func() {
	var srv *Server

	BeforeEach(func() {
		srv = New(planner.New(nil), logging.Logger())
	})

	post := func(body *bytes.Buffer) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/optimize", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		return rec
	}

	Context("GET /healthz", func() {
		It("responds ok", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Context("GET /metrics", func() {
		It("exposes planner metrics", func() {
			// Run once so the counters exist.
			post(scenarioBody(nil))

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("cropalloc_planner_runs_total"))
		})
	})

	Context("POST /v1/optimize", func() {
		It("solves a feasible scenario", func() {
			rec := post(scenarioBody(nil))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var result planner.Result
			Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(Succeed())
			Expect(result.Report.Status).To(Equal(core.StatusOptimal))
			Expect(result.RunID).NotTo(BeEmpty())
			Expect(result.Report.Area("plot", "wheat")).To(BeNumerically("~", 500, 0.01))
			Expect(result.Report.Area("plot", "rice")).To(BeNumerically("~", 500, 0.01))
		})

		It("reports infeasibility as a status, not a failure", func() {
			rec := post(scenarioBody(func(doc map[string]any) {
				doc["fields"].([]map[string]any)[0]["waterBudget"] = 0
			}))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var result planner.Result
			Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(Succeed())
			Expect(result.Report.Status).To(Equal(core.StatusInfeasible))
		})

		It("rejects invalid parameters", func() {
			rec := post(scenarioBody(func(doc map[string]any) {
				doc["crops"].([]map[string]any)[0]["waterPerHa"] = -10
			}))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("waterPerHa"))
		})

		It("rejects an unknown formula", func() {
			rec := post(scenarioBody(func(doc map[string]any) {
				doc["formula"] = "quantum"
			}))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a scenario with no crops", func() {
			rec := post(scenarioBody(func(doc map[string]any) {
				doc["crops"] = []map[string]any{}
			}))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects malformed JSON", func() {
			rec := post(bytes.NewBufferString("{not json"))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
