package domain

// ExpireResult is the named outcome of a hash-field expiration command
// (HEXPIRE, HPEXPIRE, HEXPIREAT, HPEXPIREAT, HPERSIST). The numeric
// values are the raw sentinel integers the server returns.
type ExpireResult int

const (
	// ExpireConditionNotMet: the NX/XX/GT/LT condition was not met.
	ExpireConditionNotMet ExpireResult = 0
	// ExpireSuccess: the expiration was set or removed.
	ExpireSuccess ExpireResult = 1
	// ExpireCalledWithZero: called with 0 seconds/milliseconds, the
	// field was deleted.
	ExpireCalledWithZero ExpireResult = 2
	// ExpireFieldHasNoExpiration: the field exists but carries no
	// expiration.
	ExpireFieldHasNoExpiration ExpireResult = -1
	// ExpireFieldNotExists: the field does not exist.
	ExpireFieldNotExists ExpireResult = -2
)

// ExpireResultFromReply maps a raw reply integer to its named outcome.
// The mapping is total: sentinel values a future server may introduce
// map to ExpireConditionNotMet rather than failing.
func ExpireResultFromReply(raw int64) ExpireResult {
	switch raw {
	case 1:
		return ExpireSuccess
	case 0:
		return ExpireConditionNotMet
	case 2:
		return ExpireCalledWithZero
	case -2:
		return ExpireFieldNotExists
	case -1:
		return ExpireFieldHasNoExpiration
	}
	return ExpireConditionNotMet
}

// Int returns the raw sentinel value.
func (r ExpireResult) Int() int {
	return int(r)
}

// String returns the outcome name.
func (r ExpireResult) String() string {
	switch r {
	case ExpireSuccess:
		return "success"
	case ExpireConditionNotMet:
		return "condition-not-met"
	case ExpireCalledWithZero:
		return "called-with-zero"
	case ExpireFieldNotExists:
		return "field-not-exists"
	case ExpireFieldHasNoExpiration:
		return "field-has-no-expiration"
	}
	return "condition-not-met"
}

// ExpireOption controls when a hash-field expiration command applies.
type ExpireOption int

const (
	// ExpireAlways sets the expiration unconditionally.
	ExpireAlways ExpireOption = iota
	// ExpireNX sets it only when the field has no expiration.
	ExpireNX
	// ExpireXX sets it only when the field has an expiration.
	ExpireXX
	// ExpireGT sets it only when greater than the current expiration.
	ExpireGT
	// ExpireLT sets it only when less than the current expiration.
	ExpireLT
)

// Token returns the command token for the option, or "" for
// ExpireAlways (no token on the wire).
func (o ExpireOption) Token() string {
	switch o {
	case ExpireNX:
		return "NX"
	case ExpireXX:
		return "XX"
	case ExpireGT:
		return "GT"
	case ExpireLT:
		return "LT"
	}
	return ""
}
