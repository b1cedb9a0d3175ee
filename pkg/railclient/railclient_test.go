package railclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDecodeArrival(t *testing.T) {
	now := time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC)

	t.Run("on time marker", func(t *testing.T) {
		arrival, err := decodeArrival("18:00", "On time", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !arrival.OnTime {
			t.Error("expected OnTime to be set")
		}
		if !arrival.Expected.Equal(arrival.Scheduled) {
			t.Errorf("on time arrival should expect the scheduled instant, got %v vs %v", arrival.Expected, arrival.Scheduled)
		}
	})

	t.Run("delayed", func(t *testing.T) {
		arrival, err := decodeArrival("18:00", "18:07", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if arrival.OnTime {
			t.Error("delayed arrival must not be marked on time")
		}

		expected := time.Date(2024, time.March, 12, 18, 7, 0, 0, time.UTC)
		if !arrival.Expected.Equal(expected) {
			t.Errorf("expected %v, got %v", expected, arrival.Expected)
		}
	})

	t.Run("garbage estimate", func(t *testing.T) {
		if _, err := decodeArrival("18:00", "Delayed indefinitely", now); err == nil {
			t.Error("expected error for unparseable estimate")
		}
	})
}

func TestServiceDetailsFiltersCallingPoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"callingPoints": [
					{"station": "Peterborough", "scheduledAt": "17:20", "estimatedAt": "On time"},
					{"station": "London Kings Cross", "scheduledAt": "18:00", "estimatedAt": "18:05"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient()
	client.Endpoint = server.URL

	arrival, err := client.ServiceDetails(context.Background(), "KGX", "london kings cross", "svc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if arrival.Scheduled.Format("15:04") != "18:00" {
		t.Errorf("expected scheduled 18:00, got %s", arrival.Scheduled.Format("15:04"))
	}
	if arrival.Expected.Format("15:04") != "18:05" {
		t.Errorf("expected estimate 18:05, got %s", arrival.Expected.Format("15:04"))
	}

	if _, err := client.ServiceDetails(context.Background(), "KGX", "Edinburgh Waverley", "svc-1"); err == nil {
		t.Error("expected error when the service never calls at the station")
	}
}

func TestArrivalsDecodesBoard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"trains": [
					{
						"serviceId": "svc-1",
						"scheduledAt": "18:00",
						"estimatedAt": "On time",
						"platform": "4",
						"operatorName": "LNER",
						"origin": {"name": "Leeds"},
						"destination": {"name": "London Kings Cross"}
					}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient()
	client.Endpoint = server.URL

	services, err := client.Arrivals(context.Background(), "KGX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(services))
	}
	if services[0].Origin != "Leeds" || services[0].Operator != "LNER" {
		t.Errorf("unexpected board row: %+v", services[0])
	}
}
