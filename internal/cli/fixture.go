package cli

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/demo.yaml
var demoFixture []byte

// Fixture is the YAML document read by `blogctl seed`.
type Fixture struct {
	Users    []FixtureUser    `yaml:"users"`
	Comments []FixtureComment `yaml:"comments"`
}

type FixtureUser struct {
	Email    string        `yaml:"email"`
	Name     string        `yaml:"name"`
	Password string        `yaml:"password"`
	Bio      string        `yaml:"bio"`
	Avatar   string        `yaml:"avatar"`
	Posts    []FixturePost `yaml:"posts"`
}

type FixturePost struct {
	Title     string `yaml:"title"`
	Category  string `yaml:"category"`
	Excerpt   string `yaml:"excerpt"`
	Content   string `yaml:"content"`
	Published bool   `yaml:"published"`
}

// FixtureComment refers to its post by title and its author by e-mail.
type FixtureComment struct {
	Post    string `yaml:"post"`
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
}

// LoadFixture reads path, or the built-in demo data when path is empty.
func LoadFixture(path string) (*Fixture, error) {
	data := demoFixture
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return ParseFixture(data)
}

// ParseFixture decodes strictly: unknown keys are errors.
func ParseFixture(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	var errs []error
	for i, u := range f.Users {
		if u.Email == "" || u.Name == "" || u.Password == "" {
			errs = append(errs, fmt.Errorf("users[%d]: email, name and password are required", i))
		}
		for j, p := range u.Posts {
			if p.Title == "" || p.Category == "" || p.Excerpt == "" || p.Content == "" {
				errs = append(errs, fmt.Errorf("users[%d].posts[%d]: title, category, excerpt and content are required", i, j))
			}
		}
	}
	for i, c := range f.Comments {
		if c.Post == "" || c.Author == "" || c.Content == "" {
			errs = append(errs, fmt.Errorf("comments[%d]: post, author and content are required", i))
		}
	}
	return errors.Join(errs...)
}
