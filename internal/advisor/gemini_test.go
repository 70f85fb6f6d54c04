package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/i474232898/crop-dashboard/internal/chart"
	"github.com/i474232898/crop-dashboard/internal/fetch"
	"github.com/i474232898/crop-dashboard/internal/soil"
)

func geminiServer(t *testing.T, status int, reply string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "secret" {
			t.Errorf("unexpected api key header %q", got)
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("unexpected request body: %v %+v", err, req)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func wrapReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

func newTestGemini(srv *httptest.Server, key string) *Gemini {
	return NewGemini(fetch.New(fetch.Options{Name: "gemini", BaseURL: srv.URL, HTTPClient: srv.Client()}), key)
}

func TestGeminiRecommend(t *testing.T) {
	reply := "Sure! Here you go:\n```json\n" +
		`{"recommendedCrops":[{"name":"Rice","suitability":"high","reason":"wet","growingSeason":"Kharif"}],` +
		`"riskFactors":["flooding"],"insights":["a","b"]}` + "\n```"
	srv, calls := geminiServer(t, http.StatusOK, wrapReply(reply))

	advice, err := newTestGemini(srv, "secret").Recommend(context.Background(), soil.Snapshot{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(advice.RecommendedCrops) != 1 || advice.RecommendedCrops[0].Suitability != High {
		t.Fatalf("unexpected advice %+v", advice)
	}
	if advice.Insights != "a\nb" || advice.RiskFactors[0] != "flooding" {
		t.Fatalf("unexpected advice %+v", advice)
	}
	if *calls != 1 {
		t.Fatalf("expected one call, got %d", *calls)
	}
}

func TestGeminiMissingKeyMakesNoRequest(t *testing.T) {
	srv, calls := geminiServer(t, http.StatusOK, wrapReply("{}"))

	_, err := newTestGemini(srv, "").Recommend(context.Background(), soil.Snapshot{})
	if !errors.Is(err, ErrMissingAPIKey) || fetch.KindOf(err) != fetch.KindConfig {
		t.Fatalf("expected missing key config error, got %v", err)
	}
	if *calls != 0 {
		t.Fatalf("expected no calls, got %d", *calls)
	}
}

func TestGeminiErrorsAreDistinct(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
		kind   fetch.Kind
		is     error
	}{
		{name: "http status", status: http.StatusForbidden, kind: fetch.KindHTTP},
		{name: "no candidates", status: http.StatusOK, reply: `{"candidates":[]}`, kind: fetch.KindParse, is: errEmptyReply},
		{name: "no json span", status: http.StatusOK, reply: wrapReply("I cannot help with that."), kind: fetch.KindParse, is: ErrNoJSONObject},
		{name: "bad json span", status: http.StatusOK, reply: wrapReply(`{"recommendedCrops": nope}`), kind: fetch.KindParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := geminiServer(t, tt.status, tt.reply)
			_, err := newTestGemini(srv, "secret").Recommend(context.Background(), soil.Snapshot{})
			if fetch.KindOf(err) != tt.kind {
				t.Fatalf("expected kind %s, got %v", tt.kind, err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestGeminiHTTPErrorMessage(t *testing.T) {
	srv, _ := geminiServer(t, http.StatusTooManyRequests, "")
	_, err := newTestGemini(srv, "secret").Recommend(context.Background(), soil.Snapshot{})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status in message, got %v", err)
	}
}

func TestBuildPromptIncludesEverySoilField(t *testing.T) {
	snap := soil.Snapshot{
		SoilType:               "Loamy",
		SoilDepth:              "Deep",
		OrganicCarbonDensity:   chart.Float(1.1),
		InorganicCarbonDensity: chart.Float(1.2),
		SaltAffected:           chart.Float(2),
		WaterErosion:           chart.Float(3),
		WindErosion:            chart.Float(4),
		WaterLogging:           chart.Float(5),
		Fallow:                 chart.Float(6),
		Kharif:                 chart.Float(7),
		Rabi:                   chart.Float(8),
		NetSownArea:            chart.Float(9),
		RootMoisture:           chart.Float(0.11),
		UpperMoisture:          chart.Float(0.12),
		SurfaceRunoff:          chart.Float(0.13),
		Evapotranspiration:     chart.Float(14),
		VegetationFraction:     chart.Float(15),
		FilteredNDVI:           chart.Float(16),
		LocalNDVI:              chart.Float(17),
		GlobalNDVI:             chart.Float(18),
		AvgTemperature:         chart.Float(19),
		AvgHumidity:            chart.Float(20),
		AvgRainfall:            chart.Float(21),
	}
	prompt := BuildPrompt(snap)

	for _, want := range []string{
		"Soil Type: Loamy", "Soil Depth: Deep",
		"Organic Carbon Density: 1.1", "Inorganic Carbon Density: 1.2",
		"Salt Affected: 2%", "Water Erosion: 3%", "Wind Erosion: 4%", "Water Logging: 5%",
		"Fallow: 6%", "Kharif: 7%", "Rabi: 8%", "Net Sown Area: 9%",
		"Root Level Surface Moisture: 0.11", "Upper Level Surface Moisture: 0.12",
		"Surface Runoff: 0.13", "Evapotranspiration: 14", "Vegetation Fraction: 15",
		"Filtered NDVI: 16", "Local NDVI: 17", "Global NDVI: 18",
		"Average Temperature: 19°C", "Average Humidity: 20%", "Average Rainfall: 21 mm",
		"recommendedCrops",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptMarksMissingValues(t *testing.T) {
	prompt := BuildPrompt(soil.Snapshot{})
	if !strings.Contains(prompt, "Water Erosion: unknown") || !strings.Contains(prompt, "Soil Type: unknown") {
		t.Fatalf("expected unknown markers:\n%s", prompt)
	}
}
