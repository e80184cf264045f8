package analytics

import (
	"testing"
	"time"

	"github.com/gcbaptista/go-vector-search/model"
)

func TestAnalyticsService_TrackSearchEvent(t *testing.T) {
	service := NewService(0)

	event := model.SearchEvent{
		Query:        "test query",
		ResponseTime: 50 * time.Millisecond,
		ResultCount:  10,
	}

	service.TrackSearchEvent(event)

	// Verify event was stored
	if len(service.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(service.events))
	}

	storedEvent := service.events[0]
	if storedEvent.Query != event.Query {
		t.Errorf("Expected Query %s, got %s", event.Query, storedEvent.Query)
	}
	if storedEvent.Timestamp.IsZero() {
		t.Error("Expected Timestamp to be set")
	}
}

func TestAnalyticsService_Bounded(t *testing.T) {
	service := NewService(3)
	for _, q := range []string{"a", "b", "c", "d", "e"} {
		service.TrackSearchEvent(model.SearchEvent{Query: q})
	}

	if service.Len() != 3 {
		t.Fatalf("Expected 3 retained events, got %d", service.Len())
	}
	if service.events[0].Query != "c" {
		t.Errorf("Expected oldest retained query c, got %s", service.events[0].Query)
	}
}

func TestAnalyticsService_Summary(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(0)
	service.now = func() time.Time { return now }

	events := []model.SearchEvent{
		{Query: "vektor", ResponseTime: 500 * time.Microsecond, ResultCount: 2, Timestamp: now.Add(-time.Hour)},
		{Query: "Vektor ", ResponseTime: 5 * time.Millisecond, ResultCount: 2, CacheHit: true, Timestamp: now.Add(-2 * time.Hour)},
		{Query: "dokumen", ResponseTime: 50 * time.Millisecond, ResultCount: 3, Timestamp: now.Add(-48 * time.Hour)},
		{Query: "kucing", ResponseTime: 200 * time.Millisecond, ResultCount: 0},
	}
	for _, event := range events {
		service.TrackSearchEvent(event)
	}

	summary := service.Summary()

	if summary.TotalSearches != 4 {
		t.Errorf("Expected 4 searches, got %d", summary.TotalSearches)
	}
	if summary.Searches24h != 3 {
		t.Errorf("Expected 3 searches in the last 24h, got %d", summary.Searches24h)
	}
	if summary.ZeroResultSearches != 1 {
		t.Errorf("Expected 1 zero-result search, got %d", summary.ZeroResultSearches)
	}
	if summary.CacheHits != 1 {
		t.Errorf("Expected 1 cache hit, got %d", summary.CacheHits)
	}
	wantAvg := (500*time.Microsecond + 5*time.Millisecond + 50*time.Millisecond + 200*time.Millisecond) / 4
	if summary.AvgResponseTimeUs != wantAvg.Microseconds() {
		t.Errorf("Expected avg %dus, got %dus", wantAvg.Microseconds(), summary.AvgResponseTimeUs)
	}

	dist := summary.ResponseTimeDistribution
	if dist.BucketUnder1ms != 1 || dist.Bucket1To10ms != 1 || dist.Bucket10To100ms != 1 || dist.Bucket100msPlus != 1 {
		t.Errorf("Unexpected distribution %+v", dist)
	}
	if dist.PercentageUnder1ms != 25 {
		t.Errorf("Expected 25%% under 1ms, got %v", dist.PercentageUnder1ms)
	}

	if len(summary.PopularSearches) != 3 {
		t.Fatalf("Expected 3 popular searches, got %d", len(summary.PopularSearches))
	}
	top := summary.PopularSearches[0]
	if top.Query != "vektor" || top.SearchCount != 2 {
		t.Errorf("Expected top search vektor x2, got %+v", top)
	}
	if summary.PopularSearches[1].Query != "dokumen" {
		t.Errorf("Expected ties ordered alphabetically, got %+v", summary.PopularSearches)
	}
}

func TestAnalyticsService_EmptySummary(t *testing.T) {
	summary := NewService(0).Summary()
	if summary.TotalSearches != 0 || summary.AvgResponseTimeUs != 0 {
		t.Errorf("Expected empty summary, got %+v", summary)
	}
	if summary.PopularSearches == nil {
		t.Error("Expected non-nil popular searches")
	}
}
