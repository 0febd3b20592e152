// Package websocket broadcasts solve progress to watching clients.
//
// The Hub keeps clients grouped by session ID. The service layer feeds it
// progress events through ProgressSink while a solve is running and pushes
// the final solution with BroadcastSolution. Progress frames are best-effort:
// when the hub's inbox is full they are dropped so the solver never stalls on
// a slow watcher.
package websocket
