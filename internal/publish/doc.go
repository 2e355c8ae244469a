// Package publish streams committed placements to a socket.io server while
// a plan is being built. A Publisher plugs into the planner as a listener.
package publish
