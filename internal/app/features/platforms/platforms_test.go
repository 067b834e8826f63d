package platforms

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/dalemusser/stratadesk/internal/app/features/errors"
	platformstore "github.com/dalemusser/stratadesk/internal/app/store/platforms"
	"github.com/dalemusser/stratadesk/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/dalemusser/stratadesk/internal/domain/models"
	"github.com/dalemusser/stratadesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection(platformstore.CollectionName).InsertOne(ctx, bson.M{
		"_id": "p1", "name": "AutoTrader", "platformId": "at-01",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	logger := zap.NewNop()
	h := NewHandler(platformstore.New(mongoconn.NewStatic(db), logger), errorsfeature.NewErrorLogger(logger))
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp jsonutil.ListResponse[models.Platform]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	p := resp.Items[0]
	if p.ID != "p1" || p.PlatformID != "at-01" || p.Color != models.DefaultPlatformColor {
		t.Errorf("platform = %+v", p)
	}
}

func TestList_StoreUnavailable(t *testing.T) {
	logger := zap.NewNop()
	store := platformstore.New(mongoconn.Failing{Err: errors.New("down")}, logger)
	h := NewHandler(store, errorsfeature.NewErrorLogger(logger))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/platforms", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] == "" {
		t.Error("error message should be set")
	}
}
