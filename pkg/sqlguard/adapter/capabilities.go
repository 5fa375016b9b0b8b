package adapter

// Capabilities records which optional interfaces an adapter implements. A field is nil when the
// capability is absent.
type Capabilities struct {
	FetchOne    RowFetcher
	FetchAll    RowsFetcher
	Mutate      Mutator
	Transaction TxController
	Runner      TransactionRunner
}

// Describe inspects a once and returns its capability set.
func Describe(a Adapter) Capabilities {
	var c Capabilities

	if v, ok := a.(RowFetcher); ok {
		c.FetchOne = v
	}

	if v, ok := a.(RowsFetcher); ok {
		c.FetchAll = v
	}

	if v, ok := a.(Mutator); ok {
		c.Mutate = v
	}

	if v, ok := a.(TxController); ok {
		c.Transaction = v
	}

	if v, ok := a.(TransactionRunner); ok {
		c.Runner = v
	}

	return c
}

// DescribeFor is Describe for a bound connection. Manual transactions are dropped when the adapter
// reports, through SessionChecker, that conn cannot hold one.
func DescribeFor(a Adapter, conn any) Capabilities {
	c := Describe(a)

	if sc, ok := a.(SessionChecker); ok && c.Transaction != nil && !sc.SupportsManualTransactions(conn) {
		c.Transaction = nil
	}

	return c
}

func (c Capabilities) HasFetchOne() bool { return c.FetchOne != nil }
func (c Capabilities) HasFetchAll() bool { return c.FetchAll != nil }
func (c Capabilities) HasMutate() bool   { return c.Mutate != nil }

// HasManualTransactions reports whether begin, commit and rollback can be called individually.
func (c Capabilities) HasManualTransactions() bool { return c.Transaction != nil }

// HasTransactions reports whether a unit of work can be run in a transaction, either by the adapter's
// own runner or by the generic begin/commit/rollback bracket.
func (c Capabilities) HasTransactions() bool { return c.Runner != nil || c.Transaction != nil }

// Names lists the optional capabilities present, for logs and diagnostics.
func (c Capabilities) Names() []string {
	names := make([]string, 0, 5)

	if c.HasFetchOne() {
		names = append(names, "fetchOne")
	}

	if c.HasFetchAll() {
		names = append(names, "fetchAll")
	}

	if c.HasMutate() {
		names = append(names, "mutate")
	}

	if c.HasManualTransactions() {
		names = append(names, "begin", "commit", "rollback")
	}

	if c.Runner != nil {
		names = append(names, "runInTransaction")
	}

	return names
}
