package session

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chrozal/mudcore/internal/catalog"
	"github.com/chrozal/mudcore/internal/model"
)

// statChannelNames is the fixed assignment order offered during the stat
// assignment step: the six rolled values can be placed on any channel, in
// any order, so we just walk the channels in a stable sequence and ask.
var statChannelNames = []string{"might", "vitality", "agility", "intellect", "aura", "persona"}

func (m *Manager) beginCreation(c *Conn) {
	c.creation = &creationScratch{traitAnswers: map[string]string{}}
	c.send("First name: ")
	c.setState(StateCreatingCharacter)
	c.creation.step = stepFirstName
}

// handleCreationStep advances the linear creation state machine (spec.md
// section 4.2): name -> sex -> race -> class -> roll stats -> accept/reroll
// -> assign stats -> trait walk -> description -> persist.
func (m *Manager) handleCreationStep(c *Conn, line string) {
	line = strings.TrimSpace(line)
	cr := c.creation

	switch cr.step {
	case stepFirstName:
		if line == "" {
			c.send("First name: ")
			return
		}
		cr.firstName = line
		c.send("Last name (optional, press enter to skip): ")
		cr.step = stepLastName

	case stepLastName:
		cr.lastName = line
		c.send("Sex (male/female): ")
		cr.step = stepSex

	case stepSex:
		switch strings.ToLower(line) {
		case "male", "m":
			cr.sex = model.SexMale
		case "female", "f":
			cr.sex = model.SexFemale
		default:
			c.send("Sex (male/female): ")
			return
		}
		m.promptRaces(c)
		cr.step = stepRace

	case stepRace:
		m.handleRaceChoice(c, line)

	case stepClass:
		m.handleClassChoice(c, line)

	case stepRollAccept:
		m.handleRollAccept(c, line)

	case stepAssignStat:
		m.handleAssignStat(c, line)

	case stepTrait:
		m.handleTraitAnswer(c, line)

	case stepDescription:
		cr.descBuilder = line
		m.finishCreation(c)
	}
}

func (m *Manager) promptRaces(c *Conn) {
	c.send("Choose a race:")
	for _, r := range m.deps.Catalogs.Races.All() {
		c.send(fmt.Sprintf("  %d) %s", r.ID, r.Name))
	}
	c.send("Race: ")
}

func (m *Manager) handleRaceChoice(c *Conn, line string) {
	id, err := strconv.Atoi(line)
	race := m.deps.Catalogs.Races.Get(int32(id))
	if err != nil || race == nil {
		c.send("Unknown race.")
		m.promptRaces(c)
		return
	}
	c.creation.raceID = race.ID

	c.send("Choose a class:")
	for _, cl := range m.deps.Catalogs.Classes.All() {
		c.send(fmt.Sprintf("  %d) %s", cl.ID, cl.Name))
	}
	c.send("Class: ")
	c.creation.step = stepClass
}

func (m *Manager) handleClassChoice(c *Conn, line string) {
	id, err := strconv.Atoi(line)
	class := m.deps.Catalogs.Classes.Get(int32(id))
	if err != nil || class == nil {
		c.send("Unknown class.")
		c.send("Class: ")
		return
	}
	c.creation.classID = class.ID
	m.rollStats(c)
}

// rollStats rolls 6 values by 4d6-drop-lowest (the default ruleset die,
// spec.md section 4.2) and offers accept/reroll.
func (m *Manager) rollStats(c *Conn) {
	rolled := roll6()
	c.creation.rolled = rolled
	c.send(fmt.Sprintf("Rolled: might=%d vitality=%d agility=%d intellect=%d aura=%d persona=%d",
		rolled.Might, rolled.Vitality, rolled.Agility, rolled.Intellect, rolled.Aura, rolled.Persona))
	c.send("Accept these rolls or reroll? (accept/reroll): ")
	c.creation.step = stepRollAccept
}

func roll6() model.BaseStats {
	return model.BaseStats{
		Might:     roll4d6DropLowest(),
		Vitality:  roll4d6DropLowest(),
		Agility:   roll4d6DropLowest(),
		Intellect: roll4d6DropLowest(),
		Aura:      roll4d6DropLowest(),
		Persona:   roll4d6DropLowest(),
	}
}

func roll4d6DropLowest() int {
	dice := [4]int{}
	for i := range dice {
		dice[i] = rand.Intn(6) + 1
	}
	lowest := 0
	for i := 1; i < 4; i++ {
		if dice[i] < dice[lowest] {
			lowest = i
		}
	}
	sum := 0
	for i, d := range dice {
		if i != lowest {
			sum += d
		}
	}
	return sum
}

func (m *Manager) handleRollAccept(c *Conn, line string) {
	switch strings.ToLower(line) {
	case "reroll":
		m.rollStats(c)
	case "accept":
		c.creation.assignOrder = append([]string{}, rolledValuesList(c.creation.rolled)...)
		m.promptAssignStat(c)
	default:
		c.send("Accept these rolls or reroll? (accept/reroll): ")
	}
}

// rolledValuesList returns the 6 rolled values as strings, in roll order,
// so the assignment step can consume them one at a time.
func rolledValuesList(s model.BaseStats) []string {
	return []string{
		strconv.Itoa(s.Might), strconv.Itoa(s.Vitality), strconv.Itoa(s.Agility),
		strconv.Itoa(s.Intellect), strconv.Itoa(s.Aura), strconv.Itoa(s.Persona),
	}
}

func (m *Manager) promptAssignStat(c *Conn) {
	cr := c.creation
	if len(cr.assignOrder) == 0 {
		m.applyRaceAndStartTraits(c)
		return
	}
	c.send(fmt.Sprintf("Assign value %s to which stat? (%s): ", cr.assignOrder[0], strings.Join(remainingChannels(cr.assigned), ", ")))
}

func remainingChannels(assigned model.BaseStats) []string {
	out := make([]string, 0, 6)
	for _, name := range statChannelNames {
		ch, _ := model.ParseStatChannel(name)
		if assigned.Get(ch) == 0 {
			out = append(out, name)
		}
	}
	return out
}

func (m *Manager) handleAssignStat(c *Conn, line string) {
	cr := c.creation
	ch, ok := model.ParseStatChannel(strings.ToLower(line))
	if !ok || cr.assigned.Get(ch) != 0 {
		c.send("Invalid or already-assigned stat.")
		m.promptAssignStat(c)
		return
	}
	value, _ := strconv.Atoi(cr.assignOrder[0])
	cr.assigned.Set(ch, value)
	cr.assignOrder = cr.assignOrder[1:]
	m.promptAssignStat(c)
}

func (m *Manager) applyRaceAndStartTraits(c *Conn) {
	cr := c.creation
	race := m.deps.Catalogs.Races.Get(cr.raceID)
	if race != nil {
		cr.assigned = race.ApplyModifiers(cr.assigned)
	}
	cr.traitIdx = 0
	m.promptNextTrait(c, race)
}

func (m *Manager) promptNextTrait(c *Conn, race *catalog.Race) {
	cr := c.creation
	traits := race.OrderedTraits()
	if cr.traitIdx >= len(traits) {
		c.send("Describe your character in a sentence or two: ")
		cr.step = stepDescription
		return
	}
	t := traits[cr.traitIdx]
	c.send(fmt.Sprintf("%s (%s): ", t.Prompt, strings.Join(t.Options, "/")))
	cr.step = stepTrait
}

func (m *Manager) handleTraitAnswer(c *Conn, line string) {
	cr := c.creation
	race := m.deps.Catalogs.Races.Get(cr.raceID)
	traits := race.OrderedTraits()
	t := traits[cr.traitIdx]
	cr.traitAnswers[t.Key] = line
	cr.traitIdx++
	m.promptNextTrait(c, race)
}

// finishCreation computes starting vitals, grants class starting
// skills/spells/abilities, persists the new Character, and enters PLAYING.
func (m *Manager) finishCreation(c *Conn) {
	cr := c.creation
	class := m.deps.Catalogs.Classes.Get(cr.classID)

	ch := model.NewCharacter(0)
	ch.AccountID = c.AcctRow.ID
	ch.FirstName = cr.firstName
	ch.LastName = cr.lastName
	ch.Sex = cr.sex
	ch.RaceID = cr.raceID
	ch.ClassID = cr.classID
	ch.Stats = cr.assigned
	ch.Level = 1
	ch.RoomID = model.DefaultRoomID
	ch.PersistedRoomID = model.DefaultRoomID
	ch.Description = describeTraits(cr.traitAnswers)

	if class != nil {
		ch.MaxHP = float64(class.HPDie + model.StatMod(ch.Stats.Vitality))
		ch.MaxEssence = float64(class.EssenceDie + model.StatMod(ch.Stats.Aura))
		for skill, rank := range class.StartingSkills {
			ch.Skills[skill] = rank
		}
		for _, spell := range class.StartingSpells {
			ch.KnownSpells[spell] = struct{}{}
		}
		for _, ability := range class.StartingAbilities {
			ch.KnownAbilities[ability] = struct{}{}
		}
	}
	ch.HP = ch.MaxHP
	ch.Essence = ch.MaxEssence

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	if err := m.deps.Characters.Create(ctx, ch); err != nil {
		m.deps.Log.Error("create character", zap.Error(err))
		c.send("Could not create character, try again.")
		m.enterCharacterSelect(c)
		return
	}

	m.enterPlaying(c, ch)
}

func describeTraits(answers map[string]string) string {
	var b strings.Builder
	first := true
	for _, key := range catalog.AllowedTraitOrder {
		v, ok := answers[key]
		if !ok {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", key, v)
		first = false
	}
	return b.String()
}
