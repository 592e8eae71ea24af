// Package cloudsecure provides types, errors, and interfaces for working
// with the CloudSecure multi-tenant policy API.
//
// # Overview
//
// The cloudsecure package defines the domain types (e.g., IPList, Service,
// Application), the static resource registry, and the Client and ObjectAPI
// interfaces. A concrete implementation is provided by the csclient package,
// which wires configuration, transport, authentication headers, and the
// async collection resolver. Most consumers should import csclient to
// construct a client and then work through the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
//	  "github.com/cloudsec-io/cloudsecure/pkg/csclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := csclient.New(&cloudsecure.Config{
//	    Endpoint:            "https://cloud.example.com",
//	    TenantID:            "tenant-id",
//	    ServiceAccountKey:   "key",
//	    ServiceAccountToken: "token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  api, err := cli.Resource("ip_lists")
//	  if err != nil { log.Fatal(err) }
//
//	  lists, err := api.GetAll(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = lists
//	}
//
// # Resources and policy scoping
//
// Every resource kind the client can address is an entry in the static
// registry (see LookupDescriptor and RegisteredResources). Policy-scoped
// resources live under /sec_policy/{draft|active}; the policy version for an
// operation is supplied through RequestOptions and validated before any
// request is sent. New objects are always created into the draft version.
//
// # Errors
//
// Failed exchanges surface as *APIError carrying one aggregated message,
// client-side precondition failures as *ValidationError, unknown resource
// names as *NotFoundError, and async protocol violations as *ProtocolError.
// Helpers such as IsAPIError and IsNotFound make it easy to branch on each
// kind.
package cloudsecure
