// Package toc generates and maintains a Markdown table of contents that lives
// between a pair of sentinel comments.
//
// # Overview
//
// A document opts in by carrying the sentinels:
//
//	<!-- BEGIN mktoc -->
//	<!-- END mktoc -->
//
// The begin sentinel may embed a JSON configuration that pins the ToC style
// for that document regardless of how the tool is invoked:
//
//	<!-- BEGIN mktoc {"min_depth":2,"max_depth":3,"wrap_in_details":true} -->
//
// # Pipeline
//
//   - config.go: Config, normalization and embedded config resolution
//   - scanner.go: fence-aware heading scanner yielding iter.Seq[Heading]
//   - slug.go: link stripping and anchor slugs
//   - render.go: ToC block rendering (plain or wrapped in <details>)
//   - splice.go: locating and replacing the sentinel region
//   - toc.go: Generator and MakeTOC, composing the steps above
//
// Everything in this package works on in-memory text. Reading and writing
// files is done by the mdfile package.
//
// # Usage
//
//	updated := toc.MakeTOC(content, toc.DefaultConfig())
package toc
