// Package report renders validation results in multiple output formats.
//
// Three writers share the Writer interface: SimpleWriter for terminal text,
// JSONWriter for tool integration, and MarkdownWriter for documents that can
// be posted alongside the monthly reports themselves. MultiWriter fans one
// validation result out to several destinations.
package report
