package classifier

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var defaultCorpus []byte

type Pair struct {
	Prompt   string `yaml:"prompt"`
	Response string `yaml:"response"`
}

type IdentityKind string

const (
	IdentitySet    IdentityKind = "set"
	IdentityGet    IdentityKind = "get"
	IdentityChange IdentityKind = "change"
)

type IdentityPhrase struct {
	Phrase string       `yaml:"phrase"`
	Kind   IdentityKind `yaml:"kind"`
}

type BookingCorpus struct {
	Phrases   []string `yaml:"phrases"`
	Responses []Pair   `yaml:"responses"`
}

type IdentityCorpus struct {
	Phrases   []IdentityPhrase `yaml:"phrases"`
	Responses struct {
		Set    []string `yaml:"set"`
		Change []string `yaml:"change"`
		Get    []string `yaml:"get"`
	} `yaml:"responses"`
	UnknownName string   `yaml:"unknown_name"`
	Errors      []string `yaml:"errors"`
}

type DiscoveryCorpus struct {
	Phrases  []string          `yaml:"phrases"`
	Ask      string            `yaml:"ask"`
	Reprompt string            `yaml:"reprompt"`
	General  string            `yaml:"general"`
	Current  map[string]string `yaml:"current"`
}

// Corpus is every labeled phrase and canned response the agent knows.
type Corpus struct {
	Booking           BookingCorpus   `yaml:"booking"`
	Identity          IdentityCorpus  `yaml:"identity"`
	QuestionAnswering []Pair          `yaml:"question_answering"`
	SmallTalk         []Pair          `yaml:"small_talk"`
	Discovery         DiscoveryCorpus `yaml:"discovery"`
	Fallbacks         []string        `yaml:"fallbacks"`
	Unknown           string          `yaml:"unknown"`
}

// LoadCorpus parses the corpus compiled into the binary.
func LoadCorpus() (*Corpus, error) {
	return ParseCorpus(defaultCorpus)
}

func ParseCorpus(data []byte) (*Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Corpus) Validate() error {
	var problems []string

	if len(c.Booking.Phrases) == 0 {
		problems = append(problems, "booking.phrases is empty")
	}
	if len(c.Identity.Phrases) == 0 {
		problems = append(problems, "identity.phrases is empty")
	}
	for i, p := range c.Identity.Phrases {
		switch p.Kind {
		case IdentitySet, IdentityGet, IdentityChange:
		default:
			problems = append(problems, fmt.Sprintf("identity.phrases[%d] has unknown kind %q", i, p.Kind))
		}
	}
	if len(c.Identity.Responses.Set) == 0 || len(c.Identity.Responses.Change) == 0 || len(c.Identity.Responses.Get) == 0 {
		problems = append(problems, "identity.responses needs set, change and get entries")
	}
	if len(c.Identity.Errors) == 0 {
		problems = append(problems, "identity.errors is empty")
	}
	if len(c.QuestionAnswering) == 0 {
		problems = append(problems, "question_answering is empty")
	}
	if len(c.SmallTalk) == 0 {
		problems = append(problems, "small_talk is empty")
	}
	if len(c.Discovery.Phrases) == 0 {
		problems = append(problems, "discovery.phrases is empty")
	}
	if c.Discovery.General == "" {
		problems = append(problems, "discovery.general is empty")
	}
	if len(c.Fallbacks) == 0 {
		problems = append(problems, "fallbacks is empty")
	}
	if c.Unknown == "" {
		problems = append(problems, "unknown is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid corpus: %s", strings.Join(problems, "; "))
	}
	return nil
}
