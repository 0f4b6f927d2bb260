package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/handlers"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/testutil"
)

func TestPerformanceHandler_EntryPerformance(t *testing.T) {
	t.Run("returns the entry snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPerformanceHandler(testutil.NewTestPerformanceService(t, db))
		user := testutil.CreateUser(t, db)
		property := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.CreateEntry(t, db, user.ID, property.ID)
		testutil.NewValuation(property.ID).WithValue(245000).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/entries/"+entry.ID+"/performance",
			map[string]string{"uuid": entry.ID},
		)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.EntryPerformance(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var snapshot model.PerformanceSnapshot
		if err := json.NewDecoder(w.Body).Decode(&snapshot); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if snapshot.EntryID != entry.ID {
			t.Errorf("Expected entry ID %s, got %s", entry.ID, snapshot.EntryID)
		}
		if snapshot.CurrentValue != 245000 {
			t.Errorf("Expected current value 245000, got %v", snapshot.CurrentValue)
		}
		if snapshot.FiveYearProjection.Months != 60 {
			t.Errorf("Expected a 60 month projection, got %d", snapshot.FiveYearProjection.Months)
		}
	})

	t.Run("returns 404 when entry not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPerformanceHandler(testutil.NewTestPerformanceService(t, db))
		user := testutil.CreateUser(t, db)

		nonExistentID := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/entries/"+nonExistentID+"/performance",
			map[string]string{"uuid": nonExistentID},
		)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.EntryPerformance(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}

		var response map[string]string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response["error"] != apperrors.ErrEntryNotFound.Error() {
			t.Errorf("Expected '%s' error, got '%s'", apperrors.ErrEntryNotFound.Error(), response["error"])
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPerformanceHandler(testutil.NewTestPerformanceService(t, db))
		user := testutil.CreateUser(t, db)
		property := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.CreateEntry(t, db, user.ID, property.ID)

		db.Close() // Force database error

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/entries/"+entry.ID+"/performance",
			map[string]string{"uuid": entry.ID},
		)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.EntryPerformance(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
	})
}

func TestPerformanceHandler_PortfolioPerformance(t *testing.T) {
	t.Run("returns one snapshot per active entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPerformanceHandler(testutil.NewTestPerformanceService(t, db))
		user := testutil.CreateUser(t, db)
		propertyA := testutil.CreateProperty(t, db, user.ID)
		propertyB := testutil.CreateProperty(t, db, user.ID)
		testutil.CreateEntry(t, db, user.ID, propertyA.ID)
		testutil.CreateEntry(t, db, user.ID, propertyB.ID)

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/portfolio/performance", nil), user.ID)
		w := httptest.NewRecorder()

		handler.PortfolioPerformance(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var snapshots []model.PerformanceSnapshot
		if err := json.NewDecoder(w.Body).Decode(&snapshots); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if len(snapshots) != 2 {
			t.Errorf("Expected 2 snapshots, got %d", len(snapshots))
		}
	})
}

func TestPerformanceHandler_EntryProjection(t *testing.T) {
	t.Run("projects over the requested horizon", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPerformanceHandler(testutil.NewTestPerformanceService(t, db))
		user := testutil.CreateUser(t, db)
		property := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.CreateEntry(t, db, user.ID, property.ID)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/entries/"+entry.ID+"/projection?months=120",
			map[string]string{"uuid": entry.ID},
		)
		q := req.URL.Query()
		q.Set("months", "120")
		req.URL.RawQuery = q.Encode()
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.EntryProjection(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var projection model.EquityProjection
		if err := json.NewDecoder(w.Body).Decode(&projection); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if projection.Months != 120 {
			t.Errorf("Expected a 120 month projection, got %d", projection.Months)
		}
	})

	t.Run("defaults to 60 months without the query parameter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPerformanceHandler(testutil.NewTestPerformanceService(t, db))
		user := testutil.CreateUser(t, db)
		property := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.CreateEntry(t, db, user.ID, property.ID)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/entries/"+entry.ID+"/projection",
			map[string]string{"uuid": entry.ID},
		)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.EntryProjection(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var projection model.EquityProjection
		if err := json.NewDecoder(w.Body).Decode(&projection); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if projection.Months != 60 {
			t.Errorf("Expected a 60 month projection, got %d", projection.Months)
		}
	})

	t.Run("returns 400 on a bad months parameter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPerformanceHandler(testutil.NewTestPerformanceService(t, db))
		user := testutil.CreateUser(t, db)
		property := testutil.CreateProperty(t, db, user.ID)
		entry := testutil.CreateEntry(t, db, user.ID, property.ID)

		for _, months := range []string{"zero", "-12", "0", "601"} {
			req := testutil.NewRequestWithURLParams(
				http.MethodGet,
				"/api/portfolio/entries/"+entry.ID+"/projection",
				map[string]string{"uuid": entry.ID},
			)
			q := req.URL.Query()
			q.Set("months", months)
			req.URL.RawQuery = q.Encode()
			req = testutil.AsUser(req, user.ID)
			w := httptest.NewRecorder()

			handler.EntryProjection(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400 for months=%s, got %d", months, w.Code)
			}
		}
	})
}

func TestPerformanceHandler_Benchmark(t *testing.T) {
	t.Run("returns the market comparison", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPerformanceHandler(testutil.NewTestPerformanceService(t, db))
		user := testutil.CreateUser(t, db)

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/portfolio/benchmark", nil), user.ID)
		w := httptest.NewRecorder()

		handler.Benchmark(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var benchmark model.Benchmark
		if err := json.NewDecoder(w.Body).Decode(&benchmark); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if benchmark.SP500AnnualReturn != 10.0 {
			t.Errorf("Expected benchmark return 10.0, got %v", benchmark.SP500AnnualReturn)
		}
	})
}
