//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/stockline/stockline-be/internal/adapters/db"
	redis_a "github.com/stockline/stockline-be/internal/adapters/redis_adapter"
	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/services"
	"github.com/stockline/stockline-be/internal/handlers"
	"github.com/stockline/stockline-be/test/helpers"
)

// memorySink collects audit events and ledger records in memory so the
// suite runs without a queue or object store behind it.
type memorySink struct {
	mu      sync.Mutex
	events  []domain.AuditEvent
	records []*domain.LedgerRecord
}

func (s *memorySink) Emit(_ context.Context, events []domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

func (s *memorySink) Publish(_ context.Context, record *domain.LedgerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *memorySink) eventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func (s *memorySink) recordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type UnitLifecycleE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
	sink      *memorySink
}

func (s *UnitLifecycleE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())
	s.sink = &memorySink{}

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *UnitLifecycleE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *UnitLifecycleE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *UnitLifecycleE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()
	cache := redis_a.NewCache(s.testRedis.Client, time.Hour, logger)
	repo := db.NewUnitRepository(s.testDB.Database, logger)

	transitionService := services.NewTransitionService(repo, s.sink, cache, logger)
	reservationService := services.NewReservationService(repo, s.sink, cache, 30*time.Minute, logger)
	aggregateService := services.NewAggregateService(repo, cache, logger)
	replacementService := services.NewReplacementService(repo, s.sink, s.sink, cache, logger)
	moveOutService := services.NewMoveOutService(repo, s.sink, s.sink, cache, logger)
	unitService := services.NewUnitService(repo, s.sink, cache, logger)

	unitHandler := handlers.NewUnitHandler(unitService, logger)
	transitionHandler := handlers.NewTransitionHandler(transitionService, logger)
	cartHandler := handlers.NewCartHandler(reservationService, logger)
	quantityHandler := handlers.NewQuantityHandler(aggregateService, logger)
	replacementHandler := handlers.NewReplacementHandler(replacementService, logger)
	moveOutHandler := handlers.NewMoveOutHandler(moveOutService, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/units", unitHandler.CreateUnits)
	mux.HandleFunc("GET /api/v1/units", unitHandler.ListUnits)
	mux.HandleFunc("GET /api/v1/units/code/{code}", unitHandler.GetByCode)
	mux.HandleFunc("POST /api/v1/units/retag", transitionHandler.Retag)
	mux.HandleFunc("POST /api/v1/carts/{id}/reserve", cartHandler.Reserve)
	mux.HandleFunc("POST /api/v1/carts/{id}/release", cartHandler.Release)
	mux.HandleFunc("POST /api/v1/carts/{id}/commit", cartHandler.Commit)
	mux.HandleFunc("GET /api/v1/products/{id}/quantities", quantityHandler.GetQuantities)
	mux.HandleFunc("GET /api/v1/replacements/lookup", replacementHandler.Lookup)
	mux.HandleFunc("POST /api/v1/replacements", replacementHandler.Process)
	mux.HandleFunc("POST /api/v1/move-outs", moveOutHandler.MoveOut)

	return httptest.NewServer(mux)
}

func (s *UnitLifecycleE2ESuite) TestSaleAndReplacementWorkflow() {
	productID := uuid.New()
	cartID := uuid.New()
	invoiceID := uuid.New()

	// 1. Finalize a purchase of six units
	resp := s.makeRequest("POST", "/units", map[string]interface{}{
		"product_id":  productID.String(),
		"purchase_id": uuid.New().String(),
		"quantity":    6,
		"unit_price":  25.00,
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	s.decodeResponse(resp, &created)
	s.Equal(float64(6), created["count"])

	// 2. All six count as sellable stock
	quantities := s.getQuantities(productID)
	s.Equal(float64(6), quantities["stock_quantity"])
	s.Equal(float64(6), quantities["available_quantity"])
	s.Equal("ok", quantities["stock_level"])

	// 3. Reserve two into a cart
	resp = s.makeRequest("POST", fmt.Sprintf("/carts/%s/reserve", cartID), map[string]interface{}{
		"product_id": productID.String(),
		"quantity":   2,
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var reserved map[string]interface{}
	s.decodeResponse(resp, &reserved)
	s.Equal(float64(2), reserved["count"])

	// The reserved pair already left the stock count, so the four
	// remaining stock units are all still available.
	quantities = s.getQuantities(productID)
	s.Equal(float64(4), quantities["stock_quantity"])
	s.Equal(float64(2), quantities["reserved_quantity"])
	s.Equal(float64(4), quantities["available_quantity"])

	// 4. Commit the cart into a sale
	resp = s.makeRequest("POST", fmt.Sprintf("/carts/%s/commit", cartID), map[string]interface{}{
		"invoice_id": invoiceID.String(),
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var committed map[string]interface{}
	s.decodeResponse(resp, &committed)
	s.Equal(float64(2), committed["committed"])

	quantities = s.getQuantities(productID)
	s.Equal(float64(4), quantities["stock_quantity"])
	s.Equal(float64(0), quantities["reserved_quantity"])
	s.Equal(float64(2), quantities["sold_quantity"])

	// 5. Look up the invoice through one of its sold barcodes
	soldCode := s.findUnitCode(productID, "sold")

	resp = s.makeRequest("GET", "/replacements/lookup?barcode="+soldCode, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var lookup map[string]interface{}
	s.decodeResponse(resp, &lookup)
	s.Equal(invoiceID.String(), lookup["invoice_id"])

	lines := lookup["lines"].([]interface{})
	s.Require().Len(lines, 1)
	line := lines[0].(map[string]interface{})
	s.Equal(float64(2), line["sold_quantity"])
	s.Equal(float64(0), line["replaced_quantity"])

	// 6. Exchange one sold unit
	resp = s.makeRequest("POST", "/replacements", map[string]interface{}{
		"invoice_id": invoiceID.String(),
		"items": []map[string]interface{}{
			{"product_id": productID.String(), "quantity": 1},
		},
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	resp = s.makeRequest("GET", "/replacements/lookup?barcode="+soldCode, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &lookup)
	line = lookup["lines"].([]interface{})[0].(map[string]interface{})
	s.Equal(float64(2), line["sold_quantity"])
	s.Equal(float64(1), line["replaced_quantity"])

	// 7. A second exchange of two exceeds the remaining line quantity
	resp = s.makeRequest("POST", "/replacements", map[string]interface{}{
		"invoice_id": invoiceID.String(),
		"items": []map[string]interface{}{
			{"product_id": productID.String(), "quantity": 2},
		},
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// 8. The replaced unit waits in inspection; restock it with confirmation
	unknownID := s.findUnitID(productID, "unknown")

	resp = s.makeRequest("POST", "/units/retag", map[string]interface{}{
		"unit_ids": []string{unknownID},
		"target":   "returned",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var retag map[string]interface{}
	s.decodeResponse(resp, &retag)
	s.Equal(float64(1), retag["updated"])

	resp = s.makeRequest("POST", "/units/retag", map[string]interface{}{
		"unit_ids": []string{unknownID},
		"target":   "new",
	})
	s.Equal(http.StatusPreconditionRequired, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("POST", "/units/retag", map[string]interface{}{
		"unit_ids": []string{unknownID},
		"target":   "new",
		"confirm":  true,
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	quantities = s.getQuantities(productID)
	s.Equal(float64(5), quantities["stock_quantity"])
	s.Equal(float64(1), quantities["sold_quantity"])

	s.Greater(s.sink.eventCount(), 0)
	s.Greater(s.sink.recordCount(), 0)
}

func (s *UnitLifecycleE2ESuite) TestMoveOutWorkflow() {
	productID := uuid.New()
	storeID := uuid.New()

	units := helpers.CreateTestUnits(3, productID, domain.TagDefective)
	helpers.SeedTestUnits(s.T(), s.testDB.PgxPool, units)

	quantities := s.getQuantities(productID)
	s.Equal(float64(3), quantities["defective_quantity"])

	resp := s.makeRequest("POST", "/move-outs", map[string]interface{}{
		"store_id":    storeID.String(),
		"product_ids": []string{productID.String()},
		"reason":      "water damage",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var batch map[string]interface{}
	s.decodeResponse(resp, &batch)
	s.Len(batch["unit_ids"].([]interface{}), 3)
	s.NotEmpty(batch["invoice_id"])

	// Disposed units vanish from every count
	quantities = s.getQuantities(productID)
	s.Equal(float64(0), quantities["defective_quantity"])
	s.Equal(float64(0), quantities["stock_quantity"])

	// A second pass over the same product finds nothing to dispose
	resp = s.makeRequest("POST", "/move-outs", map[string]interface{}{
		"store_id":    storeID.String(),
		"product_ids": []string{productID.String()},
		"reason":      "water damage",
	})
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func (s *UnitLifecycleE2ESuite) TestConcurrentReservations() {
	productID := uuid.New()

	units := helpers.CreateTestUnits(4, productID)
	helpers.SeedTestUnits(s.T(), s.testDB.PgxPool, units)

	// Two carts race for three of the four units; locking must let
	// exactly one through.
	statuses := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := s.makeRequest("POST", fmt.Sprintf("/carts/%s/reserve", uuid.New()), map[string]interface{}{
				"product_id": productID.String(),
				"quantity":   3,
			})
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	var succeeded, rejected int
	for status := range statuses {
		switch status {
		case http.StatusOK:
			succeeded++
		case http.StatusConflict, http.StatusLocked:
			rejected++
		default:
			s.Failf("unexpected status", "got %d", status)
		}
	}
	s.Equal(1, succeeded)
	s.Equal(1, rejected)

	quantities := s.getQuantities(productID)
	s.Equal(float64(3), quantities["reserved_quantity"])
}

// Helper methods

func (s *UnitLifecycleE2ESuite) getQuantities(productID uuid.UUID) map[string]interface{} {
	resp := s.makeRequest("GET", fmt.Sprintf("/products/%s/quantities", productID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var quantities map[string]interface{}
	s.decodeResponse(resp, &quantities)
	return quantities
}

func (s *UnitLifecycleE2ESuite) findUnitCode(productID uuid.UUID, tag string) string {
	unit := s.findUnit(productID, tag)
	return unit["code"].(string)
}

func (s *UnitLifecycleE2ESuite) findUnitID(productID uuid.UUID, tag string) string {
	unit := s.findUnit(productID, tag)
	return unit["id"].(string)
}

func (s *UnitLifecycleE2ESuite) findUnit(productID uuid.UUID, tag string) map[string]interface{} {
	resp := s.makeRequest("GET",
		fmt.Sprintf("/units?product_id=%s&tag=%s", productID, tag), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var list map[string]interface{}
	s.decodeResponse(resp, &list)

	units := list["units"].([]interface{})
	s.Require().NotEmpty(units)
	return units[0].(map[string]interface{})
}

func (s *UnitLifecycleE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	req.Header.Set("X-Actor", "e2e")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *UnitLifecycleE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestUnitLifecycleE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(UnitLifecycleE2ESuite))
}
