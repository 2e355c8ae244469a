// Package integrationtests runs whole problems through the loader, the
// planner and the report writer, the way the command line does.
package integrationtests
