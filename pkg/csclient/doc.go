// Package csclient provides the primary entry point for constructing a
// CloudSecure API client that implements the cloudsecure.Client interface.
//
// It layers configuration, HTTP transport, credential header attachment, and
// the async collection resolver on top of the resource registry and types
// defined in the cloudsecure package. Most applications should import
// csclient to build a client, then use the returned cloudsecure.Client to
// reach per-resource object APIs through Resource(name).
//
// Quick start
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
//
//	  cli, err := csclient.NewWithServiceAccount(
//	    "cloud.example.com", "tenant-id", "key", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  if !cli.CheckConnection(ctx, nil) {
//	    log.Fatal("cannot reach the API")
//	  }
//
//	  api, err := cli.Resource("services")
//	  if err != nil { log.Fatal(err) }
//
//	  services, err := api.GetAll(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = services
//	}
//
// The client authenticates with a pre-supplied service account key and token
// on every request; it never acquires or refreshes tokens itself. Credentials
// can be rotated on a live client with SetCredentials.
package csclient
