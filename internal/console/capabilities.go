package console

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	navigationTitleDashboard  = "Dashboard"
	navigationTitleContacts   = "Contact Inquiries"
	navigationTitleDemos      = "Demo Requests"
	navigationTitleClients    = "Clients"
	navigationTitleOnboarding = "Onboarding"
	navigationTitleAdmins     = "Admin Management"
	navigationTitleProfile    = "Profile"

	probeQueryParameterLimit = "limit"
	probeQueryValueLimit     = "1"

	logEventCapabilityProbeFailed = "capability_probe_failed"
	logFieldProbePath             = "path"
)

// NavigationEntry is one sidebar item the current identity may open.
type NavigationEntry struct {
	Title string
	Path  string
}

// navigationProbe binds a sidebar entry to the backend endpoint whose
// availability decides its visibility. Entries without a backend path are
// always shown.
type navigationProbe struct {
	entry          NavigationEntry
	backendPath    string
	superAdminOnly bool
}

func navigationProbes() []navigationProbe {
	return []navigationProbe{
		{entry: NavigationEntry{Title: navigationTitleDashboard, Path: "/app/dashboard"}},
		{entry: NavigationEntry{Title: navigationTitleContacts, Path: "/app/contacts"}, backendPath: "/contact"},
		{entry: NavigationEntry{Title: navigationTitleDemos, Path: "/app/demos"}, backendPath: "/demo"},
		{entry: NavigationEntry{Title: navigationTitleClients, Path: "/app/clients"}, backendPath: "/client"},
		{entry: NavigationEntry{Title: navigationTitleOnboarding, Path: "/app/onboardings"}, backendPath: "/onboarding"},
		{entry: NavigationEntry{Title: navigationTitleAdmins, Path: "/app/admins"}, backendPath: "/admin/admins", superAdminOnly: true},
		{entry: NavigationEntry{Title: navigationTitleProfile, Path: "/app/profile"}},
	}
}

// CapabilityProber decides which sidebar entries the current identity can
// use by calling each section's endpoint once. A failing probe hides the
// entry; entries without a probe stay visible regardless.
type CapabilityProber struct {
	client *backend.Client
	logger *zap.Logger

	mutex            sync.Mutex
	cachedIdentityID string
	cachedEntries    []NavigationEntry
}

// NewCapabilityProber constructs a CapabilityProber.
func NewCapabilityProber(client *backend.Client, logger *zap.Logger) *CapabilityProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CapabilityProber{client: client, logger: logger}
}

// Resolve returns the sidebar entries for the identity, probing the backend
// on the first call per identity. A cancelled context aborts the probe and
// discards every in-flight result, leaving the cache untouched.
func (prober *CapabilityProber) Resolve(ctx context.Context, identity model.Admin) ([]NavigationEntry, error) {
	prober.mutex.Lock()
	if prober.cachedIdentityID == identity.ID && prober.cachedEntries != nil {
		cached := prober.cachedEntries
		prober.mutex.Unlock()
		return cached, nil
	}
	prober.mutex.Unlock()

	eligible := make([]navigationProbe, 0)
	for _, probe := range navigationProbes() {
		if probe.superAdminOnly && !identity.IsSuperAdmin() {
			continue
		}
		eligible = append(eligible, probe)
	}

	visible := make([]bool, len(eligible))
	var waitGroup sync.WaitGroup
	for probeIndex, probe := range eligible {
		if probe.backendPath == "" {
			visible[probeIndex] = true
			continue
		}
		waitGroup.Add(1)
		go func(resultIndex int, endpointPath string) {
			defer waitGroup.Done()
			query := url.Values{}
			query.Set(probeQueryParameterLimit, probeQueryValueLimit)
			var discarded json.RawMessage
			probeErr := prober.client.Get(ctx, endpointPath, query, &discarded)
			if probeErr != nil {
				prober.logger.Debug(logEventCapabilityProbeFailed,
					zap.String(logFieldProbePath, endpointPath),
					zap.Error(probeErr),
				)
				return
			}
			visible[resultIndex] = true
		}(probeIndex, probe.backendPath)
	}
	waitGroup.Wait()

	if contextErr := ctx.Err(); contextErr != nil {
		return nil, contextErr
	}

	entries := make([]NavigationEntry, 0, len(eligible))
	for probeIndex, probe := range eligible {
		if visible[probeIndex] {
			entries = append(entries, probe.entry)
		}
	}

	prober.mutex.Lock()
	prober.cachedIdentityID = identity.ID
	prober.cachedEntries = entries
	prober.mutex.Unlock()
	return entries, nil
}

// Invalidate forgets the cached probe results, forcing the next Resolve to
// probe again. Called on logout and login.
func (prober *CapabilityProber) Invalidate() {
	prober.mutex.Lock()
	defer prober.mutex.Unlock()
	prober.cachedIdentityID = ""
	prober.cachedEntries = nil
}
