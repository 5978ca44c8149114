package baseline

import "github.com/kailas-cloud/staffdex/internal/repository/candidate"

// CandidateSource exposes the immutable candidate bags.
type CandidateSource interface {
	All() []candidate.Bag
}
