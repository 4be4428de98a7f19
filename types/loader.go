package types

import "context"

// Loader is the contract between the simulator and wherever reference strings come from.
type Loader interface {

	/*
		Load returns a reference sequence ready to be simulated.

		Implementations read a file, parse a user supplied string, generate a
		random sample, etc. A successful Load never returns an empty sequence:
		an empty source is reported as ErrEmptySequence.
	*/
	Load(ctx context.Context) ([]Page, error)
}
