package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/103.27.8.1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"success","city":"Mumbai","regionName":"Maharashtra"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	loc := client.Lookup(context.Background(), "103.27.8.1")
	if loc.City != "Mumbai" || loc.State != "Maharashtra" {
		t.Errorf("Lookup = %+v, want Mumbai/Maharashtra", loc)
	}
}

func TestLookupFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if loc := client.Lookup(context.Background(), "10.0.0.1"); loc != Unknown {
		t.Errorf("failed lookup should yield Unknown, got %+v", loc)
	}
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if loc := client.Lookup(context.Background(), "1.2.3.4"); loc != Unknown {
		t.Errorf("server error should yield Unknown, got %+v", loc)
	}
}

func TestLookupLoopback(t *testing.T) {
	client := NewClient("http://example.invalid")
	if loc := client.Lookup(context.Background(), "127.0.0.1"); loc != Unknown {
		t.Errorf("loopback should yield Unknown without a request, got %+v", loc)
	}
	if loc := client.Lookup(context.Background(), ""); loc != Unknown {
		t.Errorf("empty IP should yield Unknown, got %+v", loc)
	}
}

func TestLookupUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	if loc := client.Lookup(context.Background(), "1.2.3.4"); loc != Unknown {
		t.Errorf("unreachable service should yield Unknown, got %+v", loc)
	}
}

func TestDeviceType(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X)", "mobile"},
		{"Mozilla/5.0 (Linux; Android 13; Pixel 7) Mobile", "mobile"},
		{"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", "tablet"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "desktop"},
		{"", "desktop"},
	}
	for _, tt := range tests {
		if got := DeviceType(tt.ua); got != tt.want {
			t.Errorf("DeviceType(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}
