package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
	"gopkg.in/yaml.v3"
)

type testConf struct {
	Name  string `yaml:"name"`
	Ticks int    `yaml:"ticks"`
}

func (c *testConf) Marshal() ([]byte, error) { return json.Marshal(c) }
func (c *testConf) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }
func (c *testConf) Validate() error {
	if c.Ticks <= 0 {
		return errors.Field("Ticks", errors.ErrInput, "must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var missing testConf
	assert.IsErr(t, errors.ErrNotFound, Load(db, "test", &missing))

	err := Save(db, "test", &testConf{Name: "x"})
	assert.FieldError(t, err, "Ticks", errors.ErrInput)

	assert.Nil(t, Save(db, "test", &testConf{Name: "x", Ticks: 30}))
	var got testConf
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, testConf{Name: "x", Ticks: 30}, got)
}

func TestInitConfig(t *testing.T) {
	const genesis = `
test:
  name: main
  ticks: 15
`
	var opts Options
	assert.Nil(t, yaml.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var conf testConf
	assert.Nil(t, InitConfig(db, opts, "test", &conf))

	var got testConf
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, testConf{Name: "main", Ticks: 15}, got)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "other", &conf))
}
