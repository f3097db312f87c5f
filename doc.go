// Package courseops provides the tooling behind a course-authoring site:
// regenerating TikZ figures through an external LaTeX toolchain, listing
// calendar events from ICS feeds and running pre/post-render notebook
// filters.
//
// The figure driver executes a named recipe – an ordered list of tool
// definitions loaded from an editor settings document – against every source
// document of a directory. Documents are processed concurrently by a bounded
// worker pool while the tools of one document always run sequentially; a
// cleanup pass brackets the run on both sides.
//
// End-users typically interact via the high-level Service façade exposed by
// the root package:
//
//	srv, _ := courseops.New()
//	rt := srv.Runtime()
//	rep, _ := rt.Regenerate(ctx, "docs/tikz-figures")
//	rep.Print(os.Stdout)
//
// For more details see the individual sub-packages.
package courseops
