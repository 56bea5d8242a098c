// Package router holds the CLI's navigation state and the gate that keeps
// protected commands away from anonymous sessions.
//
// A route is a path-like string such as "/passwords" or "/share/<token>".
// Navigator keeps the current route and the history behind it; Gate decides,
// from the session status alone, whether a protected route may render.
package router
