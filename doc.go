// Package labels generates reproducible, hierarchical, human-readable
// identifiers for entities created during a program's execution, without
// requiring every entity to be named explicitly.
//
// Labels look like filesystem paths: a scope is a directory, a label is a
// file. Entering a scope resets its counter, so an identical sequence of
// scope and Auto calls always yields the identical sequence of labels:
//
//	scope, _ := labels.NewScope("model")
//	scope.Do(func() error {
//		l1, _ := labels.Auto()                         // model/1
//		l2, _ := labels.Auto()                         // model/2
//		l3, _ := labels.Auto(labels.WithName("foo"))   // model/foo
//		return nil
//	})
//
// All state lives on a Labeler; the package-level functions use a
// process-wide default instance. Nothing here is safe for concurrent use:
// callers in concurrent environments should keep one Labeler per logical
// task or serialize access externally.
//
// Selectors are the read side: they evaluate boolean expressions (expr, CEL,
// or JavaScript behind the js_match build tag) against generated labels to
// pick entities back out of a collection.
package labels
