package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/imamik/azcap/internal/catalog"
	"github.com/imamik/azcap/internal/metrics"
	"github.com/imamik/azcap/internal/plan"
)

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.catalog.Subscriptions(r.Context())
	if err != nil {
		s.upstreamError(w, "list subscriptions", err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	regions, err := s.catalog.Regions(r.Context(), r.URL.Query().Get("subscription_id"))
	if err != nil {
		s.upstreamError(w, "list locations", err)
		return
	}
	writeJSON(w, http.StatusOK, regions)
}

func (s *Server) handleZoneMappings(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}
	mappings, err := s.catalog.ZoneMappingFor(r.Context(), location, r.URL.Query().Get("subscription_id"))
	if err != nil {
		s.upstreamError(w, "zone mappings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"location":                 location,
		"availabilityZoneMappings": mappings,
	})
}

func (s *Server) handleVMSizes(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}
	sizes, err := s.catalog.InstanceSizes(r.Context(), location, r.URL.Query().Get("subscription_id"))
	if err != nil {
		s.upstreamError(w, "list vm sizes", err)
		return
	}
	writeJSON(w, http.StatusOK, sizes)
}

func (s *Server) handleComputeSKUs(w http.ResponseWriter, r *http.Request) {
	skus, err := s.catalog.ResourceSKUs(r.Context(), r.URL.Query().Get("location"), r.URL.Query().Get("subscription_id"))
	if err != nil {
		s.upstreamError(w, "list resource skus", err)
		return
	}
	writeJSON(w, http.StatusOK, skus)
}

// handleVMZoneDetails reports the full zone set of a VM size next to the
// capability-differentiated one, so callers can see for example which zones
// advertise UltraSSD support.
func (s *Server) handleVMZoneDetails(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	size := r.URL.Query().Get("size")
	if location == "" || size == "" {
		writeError(w, http.StatusBadRequest, "location and size are required")
		return
	}
	skus, err := s.catalog.ResourceSKUs(r.Context(), location, r.URL.Query().Get("subscription_id"))
	if err != nil {
		s.upstreamError(w, "list resource skus", err)
		return
	}

	allZones := make(map[string]struct{})
	featureZones := make(map[string]map[string]struct{})
	for _, sku := range skus {
		if !strings.EqualFold(sku.ResourceType, "virtualMachines") {
			continue
		}
		if sku.Name != size && sku.Size != size {
			continue
		}
		for _, z := range sku.Zones {
			allZones[z] = struct{}{}
		}
		// Zone groups with identical capability sets are not distinguished
		// upstream, so a capability is attributed to every zone of the size.
		for _, group := range sku.ZoneCapabilities {
			for name, val := range group {
				key := name
				if val != "" && val != "True" && val != "False" {
					key = fmt.Sprintf("%s=%s", name, val)
				}
				if featureZones[key] == nil {
					featureZones[key] = make(map[string]struct{})
				}
				for z := range allZones {
					featureZones[key][z] = struct{}{}
				}
			}
		}
	}

	features := make(map[string][]string, len(featureZones))
	for key, zones := range featureZones {
		features[key] = sortedZones(zones)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"size":          size,
		"region":        location,
		"all_zones":     sortedZones(allZones),
		"feature_zones": features,
	})
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}
	usages, err := s.catalog.Usages(r.Context(), location, r.URL.Query().Get("subscription_id"))
	if err != nil {
		s.upstreamError(w, "list usage", err)
		return
	}
	writeJSON(w, http.StatusOK, usages)
}

func (s *Server) handleResourceSKUs(w http.ResponseWriter, r *http.Request) {
	resourceType := r.URL.Query().Get("resource_type")
	if resourceType == "" || !strings.Contains(resourceType, "/") {
		writeError(w, http.StatusBadRequest, "resource_type is required (Provider/Type)")
		return
	}
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	items, _, err := s.catalog.SKUOptions(r.Context(), resourceType, location, r.URL.Query().Get("subscription_id"))
	if err != nil {
		// Enumeration failures degrade to an empty listing with a hint.
		writeJSON(w, http.StatusOK, map[string]any{
			"items":   []catalog.SKUOption{},
			"warning": fmt.Sprintf("SKU enumeration failed: %v", err),
		})
		return
	}
	if items == nil {
		items = []catalog.SKUOption{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, _ *http.Request) {
	s.catalog.ClearCache()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleValidatePlan(w http.ResponseWriter, r *http.Request) {
	var p plan.Plan
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	start := time.Now()
	resp, err := s.engine.ValidatePlan(r.Context(), &p)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.upstreamError(w, "validate plan", err)
		return
	}
	metrics.RecordPlanDuration(time.Since(start).Seconds())
	for _, item := range resp.Results {
		metrics.RecordValidation(string(item.Status))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) upstreamError(w http.ResponseWriter, op string, err error) {
	// A missing subscription is a configuration problem the caller can fix
	// by naming one, not an upstream failure.
	if errors.Is(err, catalog.ErrNoSubscription) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("upstream call failed", "operation", op, "error", err)
	writeError(w, http.StatusBadGateway, fmt.Sprintf("%s: %v", op, err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func sortedZones(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for z := range set {
		out = append(out, z)
	}
	sort.Strings(out)
	return out
}
