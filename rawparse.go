package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ErrInvalidRoster reports malformed catalog or roster input.
var ErrInvalidRoster = errors.New("invalid roster")

// parseSkillRolls reads a {"cmd":{"base":..,"min":..,"max":..},...} object.
func parseSkillRolls(v gjson.Result, c *CrewMember) error {
	var err error
	v.ForEach(func(k, r gjson.Result) bool {
		sk, ok := parseSkill(k.String())
		if !ok {
			err = fmt.Errorf("unknown skill %q", k.String())
			return false
		}
		roll := SkillRoll{
			Base:    r.Get("base").Float(),
			MinRoll: r.Get("min").Float(),
			MaxRoll: r.Get("max").Float(),
		}
		if verr := validate.Struct(roll); verr != nil {
			err = fmt.Errorf("skill %s: %w", sk, verr)
			return false
		}
		c.SetSkill(sk, roll)
		return true
	})
	return err
}

func parseCatalog(dataJSON string) (*Catalog, error) {
	if !gjson.Valid(dataJSON) {
		return nil, fmt.Errorf("%w: catalog is not valid JSON", ErrInvalidRoster)
	}
	var crew []CrewMember
	seen := make(map[string]bool)
	var err error
	gjson.Get(dataJSON, "crew").ForEach(func(_, v gjson.Result) bool {
		c := CrewMember{Name: v.Get("name").String()}
		if c.Name == "" {
			err = fmt.Errorf("%w: catalog entry %d has no name", ErrInvalidRoster, len(crew))
			return false
		}
		if seen[c.Name] {
			err = fmt.Errorf("%w: duplicate catalog entry %q", ErrInvalidRoster, c.Name)
			return false
		}
		seen[c.Name] = true
		if perr := parseSkillRolls(v.Get("skills"), &c); perr != nil {
			err = fmt.Errorf("%w: %s: %w", ErrInvalidRoster, c.Name, perr)
			return false
		}
		crew = append(crew, c)
		return true
	})
	if err != nil {
		return nil, err
	}
	return newCatalog(crew), nil
}

// parseRosterEntries resolves roster entries against cat. An entry carrying
// its own "skills" uses them in place of the catalog rolls.
func parseRosterEntries(cat *Catalog, entries gjson.Result) (*PlayerRoster, error) {
	r := &PlayerRoster{}
	seen := make(map[string]bool)
	var err error
	entries.ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name").String()
		base, ok := cat.Find(name)
		if !ok {
			err = fmt.Errorf("%w: unknown crew %q", ErrInvalidRoster, name)
			return false
		}
		if seen[base.Name] {
			err = fmt.Errorf("%w: %q listed twice", ErrInvalidRoster, base.Name)
			return false
		}
		seen[base.Name] = true
		c := CrewMember{Name: base.Name, Vaulted: v.Get("vaulted").Bool()}
		if skills := v.Get("skills"); skills.Exists() {
			if perr := parseSkillRolls(skills, &c); perr != nil {
				err = fmt.Errorf("%w: %s: %w", ErrInvalidRoster, c.Name, perr)
				return false
			}
		} else {
			c.Skills = base.Skills
			c.SkillMask = base.SkillMask
		}
		r.Crew = append(r.Crew, c)
		return true
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseRoster(cat *Catalog, archJSON string) (*PlayerRoster, error) {
	if !gjson.Valid(archJSON) {
		return nil, fmt.Errorf("%w: roster is not valid JSON", ErrInvalidRoster)
	}
	return parseRosterEntries(cat, gjson.Get(archJSON, "crew"))
}

func loadFromStrings(dataJSON, archJSON string) (*InputData, error) {
	cat, err := parseCatalog(dataJSON)
	if err != nil {
		return nil, err
	}
	input := &InputData{Catalog: cat}
	if archJSON != "" {
		if input.Roster, err = parseRoster(cat, archJSON); err != nil {
			return nil, err
		}
	}
	return input, nil
}

// LoadRawData reads the crew catalog and, when archivePath is set, the
// player roster.
func LoadRawData(dataPath, archivePath string) (*InputData, error) {
	rawBytes, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dataPath, err)
	}
	var archJSON string
	if archivePath != "" {
		archBytes, err := os.ReadFile(archivePath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", archivePath, err)
		}
		archJSON = string(archBytes)
	}
	return loadFromStrings(string(rawBytes), archJSON)
}
