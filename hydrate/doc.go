// Package hydrate turns parsed markup documents into renderer-agnostic UI trees,
// resolving component tags against a genui.Registry.
//
// Unknown components do not fail a document: they become genui.Dropped
// placeholders and are reported once per session as UnresolvedComponentEvents.
// Attribute values that are not literals do fail it, with
// genui.ErrUnsupportedAttributeExpression.
package hydrate
