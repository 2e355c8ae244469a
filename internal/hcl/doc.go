// Package hcl provides the HCL implementation of config.Loader. It parses
// problem files with hclparse, decodes their blocks with gohcl and converts
// number and tuple values through go-cty.
package hcl
