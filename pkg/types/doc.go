// Package types defines the catalog entities (publishers, authoring entities,
// books, and ad hoc team memberships), the Store and Tx interfaces every
// backend implements, configuration, and the error taxonomy shared by the
// catalog service and the CLI.
package types
