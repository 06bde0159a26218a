package file

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// codec converts between the in-memory roles and a file encoding.
type codec interface {
	Encode(roles []domain.Role) ([]byte, error)
	Decode(data []byte) ([]domain.Role, error)
}

// codecFor selects a codec from the extension of location.
func codecFor(location string) (codec, error) {
	ext := strings.ToLower(path.Ext(location))
	switch ext {
	case ".xml":
		return xmlCodec{}, nil
	case ".toml":
		return tomlCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported role file extension %q (want .xml or .toml)", domain.ErrInvalidInput, ext)
	}
}

// ==================== XML ====================

type xmlDocument struct {
	XMLName xml.Name  `xml:"roles"`
	Roles   []xmlRole `xml:"role"`
}

type xmlRole struct {
	Name  string   `xml:"name"`
	Users []string `xml:"users>user"`
}

type xmlCodec struct{}

func (xmlCodec) Encode(roles []domain.Role) ([]byte, error) {
	doc := xmlDocument{Roles: make([]xmlRole, len(roles))}
	for i := range roles {
		doc.Roles[i] = xmlRole{Name: roles[i].Name, Users: roles[i].Users}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (xmlCodec) Decode(data []byte) ([]domain.Role, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	roles := make([]domain.Role, len(doc.Roles))
	for i, r := range doc.Roles {
		roles[i] = newRole(r.Name, r.Users)
	}
	return roles, nil
}

// ==================== TOML ====================

type tomlDocument struct {
	Roles []tomlRole `toml:"role"`
}

type tomlRole struct {
	Name  string   `toml:"name"`
	Users []string `toml:"users"`
}

type tomlCodec struct{}

func (tomlCodec) Encode(roles []domain.Role) ([]byte, error) {
	doc := tomlDocument{Roles: make([]tomlRole, len(roles))}
	for i := range roles {
		users := roles[i].Users
		if users == nil {
			users = []string{}
		}
		doc.Roles[i] = tomlRole{Name: roles[i].Name, Users: users}
	}
	return toml.Marshal(doc)
}

func (tomlCodec) Decode(data []byte) ([]domain.Role, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	roles := make([]domain.Role, len(doc.Roles))
	for i, r := range doc.Roles {
		roles[i] = newRole(r.Name, r.Users)
	}
	return roles, nil
}

// newRole builds a role with a non-nil member list.
func newRole(name string, users []string) domain.Role {
	if users == nil {
		users = []string{}
	}
	return domain.Role{Name: name, Users: users}
}
