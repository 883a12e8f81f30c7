package memory

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	s "github.com/jlym/postboard/go/internal/server"
	"github.com/jlym/postboard/go/internal/storage"
)

// Seed is the initial content of a MemServer.
type Seed struct {
	Users []SeedUser `yaml:"users" toml:"users"`
	Posts []SeedPost `yaml:"posts" toml:"posts"`
}

type SeedUser struct {
	ID    int    `yaml:"id" toml:"id"`
	Name  string `yaml:"name" toml:"name"`
	Email string `yaml:"email" toml:"email"`
	Age   *int   `yaml:"age" toml:"age"`
}

type SeedPost struct {
	ID      int    `yaml:"id" toml:"id"`
	Title   string `yaml:"title" toml:"title"`
	Content string `yaml:"content" toml:"content"`
	UserID  int    `yaml:"userId" toml:"userId"`
}

func DefaultSeed() *Seed {
	age := func(v int) *int { return &v }
	return &Seed{
		Users: []SeedUser{
			{ID: 1, Name: "John Doe", Email: "john@example.com", Age: age(30)},
			{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Age: age(25)},
		},
		Posts: []SeedPost{
			{ID: 1, Title: "First Post", Content: "Hello World!", UserID: 1},
			{ID: 2, Title: "Second Post", Content: "Node.js is awesome", UserID: 2},
		},
	}
}

// LoadSeedFile reads a seed from a .yaml, .yml or .toml file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading seed file failed, path=\"%s\"", path)
	}

	var seed Seed
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &seed)
	case ".toml":
		_, err = toml.Decode(string(data), &seed)
	default:
		return nil, errors.Errorf("unsupported seed file extension \"%s\"", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing seed file failed, path=\"%s\"", path)
	}

	return &seed, nil
}

// Validate checks the seed against the same rules the stores enforce at
// runtime, plus unique ids.
func (seed *Seed) Validate() error {
	userIDs := make(map[int]bool, len(seed.Users))
	emails := make(map[string]bool, len(seed.Users))
	for i, u := range seed.Users {
		switch {
		case u.ID <= 0:
			return errors.Errorf("seed user %d: id must be positive", i)
		case userIDs[u.ID]:
			return errors.Errorf("seed user %d: duplicate id %d", i, u.ID)
		case u.Name == "" || u.Email == "":
			return errors.Errorf("seed user %d: %s", i, s.MsgNameEmailRequired)
		case !validAge(u.Age):
			return errors.Errorf("seed user %d: %s", i, s.MsgAgeOutOfRange)
		case emails[u.Email]:
			return errors.Errorf("seed user %d: duplicate email \"%s\"", i, u.Email)
		}
		userIDs[u.ID] = true
		emails[u.Email] = true
	}

	postIDs := make(map[int]bool, len(seed.Posts))
	for i, p := range seed.Posts {
		switch {
		case p.ID <= 0:
			return errors.Errorf("seed post %d: id must be positive", i)
		case postIDs[p.ID]:
			return errors.Errorf("seed post %d: duplicate id %d", i, p.ID)
		case p.Title == "" || p.Content == "" || p.UserID <= 0:
			return errors.Errorf("seed post %d: %s", i, s.MsgPostFieldsRequired)
		case !userIDs[p.UserID]:
			return errors.Errorf("seed post %d: user %d does not exist", i, p.UserID)
		}
		postIDs[p.ID] = true
	}

	return nil
}

func (seed *Seed) apply(users *UserStore, posts *PostStore) {
	for _, u := range seed.Users {
		users.insert(&storage.User{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Age:   copyInt(u.Age),
		})
	}
	for _, p := range seed.Posts {
		posts.insert(&storage.Post{
			ID:      p.ID,
			Title:   p.Title,
			Content: p.Content,
			UserID:  p.UserID,
		})
	}
}
