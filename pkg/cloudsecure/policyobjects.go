package cloudsecure

// IPList represents a set of IP ranges and FQDNs used as a policy object.
type IPList struct {
	Href        string    `json:"href,omitempty"        yaml:"href,omitempty"`
	Name        string    `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	IPRanges    []IPRange `json:"ip_ranges,omitempty"   yaml:"ip_ranges,omitempty"`
	FQDNs       []FQDN    `json:"fqdns,omitempty"       yaml:"fqdns,omitempty"`
}

// HrefValue returns the server-issued locator, empty until created.
func (l *IPList) HrefValue() string {
	return l.Href
}

// IPRange is a single address range inside an IP list. Exclusion ranges are
// carved out of the inclusive ranges around them.
type IPRange struct {
	FromIP      string `json:"from_ip,omitempty"     yaml:"from_ip,omitempty"`
	ToIP        string `json:"to_ip,omitempty"       yaml:"to_ip,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Exclusion   bool   `json:"exclusion,omitempty"   yaml:"exclusion,omitempty"`
}

// FQDN is a fully qualified domain name entry inside an IP list.
type FQDN struct {
	FQDN        string `json:"fqdn"                  yaml:"fqdn"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Service represents a named set of ports and protocols used as a policy
// object.
type Service struct {
	Href         string        `json:"href,omitempty"          yaml:"href,omitempty"`
	Name         string        `json:"name,omitempty"          yaml:"name,omitempty"`
	Description  string        `json:"description,omitempty"   yaml:"description,omitempty"`
	ServicePorts []ServicePort `json:"service_ports,omitempty" yaml:"service_ports,omitempty"`
}

// HrefValue returns the server-issued locator, empty until created.
func (s *Service) HrefValue() string {
	return s.Href
}

// ServicePort is a port or port range with its protocol number.
type ServicePort struct {
	Port     int `json:"port,omitempty"    yaml:"port,omitempty"`
	ToPort   int `json:"to_port,omitempty" yaml:"to_port,omitempty"`
	Protocol int `json:"proto,omitempty"   yaml:"proto,omitempty"`
}

// Application represents a discovered cloud application.
type Application struct {
	Href        string `json:"href,omitempty"        yaml:"href,omitempty"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	State       string `json:"state,omitempty"       yaml:"state,omitempty"`
}

// HrefValue returns the server-issued locator.
func (a *Application) HrefValue() string {
	return a.Href
}

// Label represents a key/value tag applied to workloads and resources.
type Label struct {
	Href  string `json:"href,omitempty"  yaml:"href,omitempty"`
	Key   string `json:"key,omitempty"   yaml:"key,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// HrefValue returns the server-issued locator.
func (l *Label) HrefValue() string {
	return l.Href
}

// CloudCredential represents an onboarded cloud integration, such as an AWS
// flow-log bucket or an Azure storage account.
type CloudCredential struct {
	Href           string   `json:"href,omitempty"            yaml:"href,omitempty"`
	Type           string   `json:"type,omitempty"            yaml:"type,omitempty"`
	AccountID      string   `json:"org_id,omitempty"          yaml:"org_id,omitempty"`
	SubscriptionID string   `json:"subscription_id,omitempty" yaml:"subscription_id,omitempty"`
	Destinations   []string `json:"destinations,omitempty"    yaml:"destinations,omitempty"`
}

// HrefValue returns the server-issued locator.
func (c *CloudCredential) HrefValue() string {
	return c.Href
}
