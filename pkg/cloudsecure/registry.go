package cloudsecure

import "sort"

// Descriptor describes one registered resource kind: its endpoint, the type
// its wire representation decodes into, and its scoping rules. Descriptors
// are immutable; adding a resource kind means adding a table entry below.
type Descriptor struct {
	// Name is the registry key, unique across the table.
	Name string

	// Endpoint is the resource path below /api/{version}.
	Endpoint string

	// New returns a pointer to a zero value of the target type for the
	// decoder to fill in.
	New func() interface{}

	// PolicyScoped marks resources addressed under /sec_policy/{draft|active}.
	PolicyScoped bool

	// TenantGlobal marks resources shared across the whole tenant rather
	// than owned by a single policy or workspace.
	TenantGlobal bool
}

// registry is the static catalog of resource kinds known to the API. It is
// populated once and never mutated.
var registry = map[string]Descriptor{
	"ip_lists": {
		Name:         "ip_lists",
		Endpoint:     "/ip_lists",
		New:          func() interface{} { return new(IPList) },
		PolicyScoped: true,
	},
	"services": {
		Name:         "services",
		Endpoint:     "/services",
		New:          func() interface{} { return new(Service) },
		PolicyScoped: true,
	},
	"applications": {
		Name:     "applications",
		Endpoint: "/applications",
		New:      func() interface{} { return new(Application) },
	},
	"labels": {
		Name:         "labels",
		Endpoint:     "/labels",
		New:          func() interface{} { return new(Label) },
		TenantGlobal: true,
	},
	"cloud_credentials": {
		Name:         "cloud_credentials",
		Endpoint:     "/integrations/cloud_credentials",
		New:          func() interface{} { return new(CloudCredential) },
		TenantGlobal: true,
	},
	"resources": {
		Name:         "resources",
		Endpoint:     "/bridge/resources",
		New:          func() interface{} { return new(Reference) },
		TenantGlobal: true,
	},
}

// LookupDescriptor returns the descriptor registered under name, or a
// NotFoundError for unknown names. Lookups never touch the network.
func LookupDescriptor(name string) (Descriptor, error) {
	descriptor, ok := registry[name]
	if !ok {
		return Descriptor{}, &NotFoundError{Name: name}
	}

	return descriptor, nil
}

// RegisteredResources returns the sorted names of every resource kind in the
// registry.
func RegisteredResources() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
