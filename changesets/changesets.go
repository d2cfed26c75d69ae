package changesets

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tgx-android/tgxmeta/properties"
	"golang.org/x/exp/slices"
)

// ErrMissingChangeSetMetadata indicates that a pull request listed for the build has incomplete metadata.
var ErrMissingChangeSetMetadata = errors.New("missing change set metadata")

// IDsKey is the properties key listing the pull requests merged into the build.
const IDsKey = "pr.ids"

var idRegex = regexp.MustCompile(`^[0-9]+$`)

// PullRequest describes a pull request whose changes were merged into the build.
type PullRequest struct {
	// ID is the pull request number.
	ID int64 `json:"id"`

	// CommitShort is the abbreviated hash of the pull request commit included in the build.
	CommitShort string `json:"commit"`

	// CommitLong is the full hash of the pull request commit included in the build.
	CommitLong string `json:"commitFull"`

	// CommitDate is the commit time, in unix seconds.
	CommitDate int64 `json:"commitDate"`

	// Author is the author of the pull request.
	Author string `json:"author"`
}

// Lookup provides the metadata of a single pull request.
type Lookup interface {
	PullRequest(id int64) (PullRequest, error)
}

// LookupFunc is an adapter allowing an ordinary function to be used as a Lookup.
type LookupFunc func(id int64) (PullRequest, error)

// PullRequest calls f(id).
func (f LookupFunc) PullRequest(id int64) (PullRequest, error) {
	return f(id)
}

// ParseIDs splits a comma-separated list of pull request ids. Entries are trimmed but not validated.
func ParseIDs(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	ids := strings.Split(value, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}
	return ids
}

// Resolve looks up every numeric id and returns the pull requests sorted by ascending id. Ids that are not entirely
// decimal digits are skipped and duplicates collapse into a single entry. A failed lookup fails the whole resolution.
func Resolve(ids []string, lookup Lookup) ([]PullRequest, error) {
	numeric := make([]int64, 0, len(ids))
	for _, raw := range ids {
		raw = strings.TrimSpace(raw)
		if !idRegex.MatchString(raw) {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// Too large to be a pull request number
			continue
		}
		numeric = append(numeric, id)
	}
	slices.Sort(numeric)
	numeric = slices.Compact(numeric)

	pullRequests := make([]PullRequest, 0, len(numeric))
	for _, id := range numeric {
		pr, err := lookup.PullRequest(id)
		if err != nil {
			if errors.Is(err, ErrMissingChangeSetMetadata) {
				return nil, err
			}
			return nil, errors.Wrapf(ErrMissingChangeSetMetadata, "pull request #%d: %v", id, err)
		}
		pr.ID = id
		pullRequests = append(pullRequests, pr)
	}
	return pullRequests, nil
}

// PropertiesLookup returns a Lookup reading pr.<id>.commit_short, pr.<id>.commit_long, pr.<id>.date and
// pr.<id>.author from the provided properties.
func PropertiesLookup(props *properties.Properties) Lookup {
	return LookupFunc(func(id int64) (PullRequest, error) {
		prefix := "pr." + strconv.FormatInt(id, 10) + "."
		var (
			pr  = PullRequest{ID: id}
			err error
		)
		if pr.CommitShort, err = props.GetOrThrow(prefix + "commit_short"); err != nil {
			return PullRequest{}, errors.Wrap(ErrMissingChangeSetMetadata, err.Error())
		}
		if pr.CommitLong, err = props.GetOrThrow(prefix + "commit_long"); err != nil {
			return PullRequest{}, errors.Wrap(ErrMissingChangeSetMetadata, err.Error())
		}
		if pr.CommitDate, err = props.GetLongOrThrow(prefix + "date"); err != nil {
			return PullRequest{}, errors.Wrap(ErrMissingChangeSetMetadata, err.Error())
		}
		if pr.Author, err = props.GetOrThrow(prefix + "author"); err != nil {
			return PullRequest{}, errors.Wrap(ErrMissingChangeSetMetadata, err.Error())
		}
		return pr, nil
	})
}

// FromProperties resolves the pull requests listed under IDsKey using PropertiesLookup.
func FromProperties(props *properties.Properties) ([]PullRequest, error) {
	return Resolve(ParseIDs(props.Get(IDsKey, "")), PropertiesLookup(props))
}

// Columns describes the pull requests of a build as index-aligned sequences.
type Columns struct {
	IDs         []int64
	Dates       []int64
	Commits     []string
	CommitsFull []string
	Authors     []string
	URLs        []string
}

// ToColumns splits the pull requests into index-aligned sequences. urlFunc renders the URL of each pull request.
func ToColumns(pullRequests []PullRequest, urlFunc func(id int64, commitLong string) string) Columns {
	c := Columns{
		IDs:         make([]int64, 0, len(pullRequests)),
		Dates:       make([]int64, 0, len(pullRequests)),
		Commits:     make([]string, 0, len(pullRequests)),
		CommitsFull: make([]string, 0, len(pullRequests)),
		Authors:     make([]string, 0, len(pullRequests)),
		URLs:        make([]string, 0, len(pullRequests)),
	}
	for _, pr := range pullRequests {
		c.IDs = append(c.IDs, pr.ID)
		c.Dates = append(c.Dates, pr.CommitDate)
		c.Commits = append(c.Commits, pr.CommitShort)
		c.CommitsFull = append(c.CommitsFull, pr.CommitLong)
		c.Authors = append(c.Authors, pr.Author)
		c.URLs = append(c.URLs, urlFunc(pr.ID, pr.CommitLong))
	}
	return c
}
