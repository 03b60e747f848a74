package refdata

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadQuestionBank reads a YAML question bank of the form
//
//	questions:
//	  - id: q1
//	    category: adventure
//	    options:
//	      - {value: a, points: 0}
func LoadQuestionBank(path string) ([]Question, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadQuestionBank, err)
	}
	var qs []Question
	if err := k.UnmarshalWithConf("questions", &qs, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadQuestionBank, err)
	}
	if err := validateQuestions(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// LoadWithQuestionBank returns the default tables with the bank at path.
func LoadWithQuestionBank(path string) (*Tables, error) {
	qs, err := LoadQuestionBank(path)
	if err != nil {
		return nil, err
	}
	return Default().WithQuestions(qs)
}
