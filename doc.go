// Package caseflow executes customer-support cases as a fixed workflow: an
// ordered sequence of stages with a single branch point, each stage reading
// the shared case record and returning a patch the engine merges.
//
// The hard part lives in the sub-packages:
//
//   - engine  – the driver loop, the router and the stage implementations
//   - model   – the case record, patch semantics and final payload
//   - gateway – the narrow (provider, ability, params) -> result contract,
//     with an MCP streamable-HTTP client and an in-process mock
//
// Caseflow is designed to be embedded in host applications. End-users
// typically interact with the engine via the high-level Service façade
// exposed by the root package:
//
//	srv, _ := caseflow.New(caseflow.WithMockGateway())
//	record, _ := srv.Run(ctx, model.Input{TicketID: "12345", Priority: "high"})
//	fmt.Println(record.FinalPayload.Status)
//
// For more details see the individual sub-packages.
package caseflow
