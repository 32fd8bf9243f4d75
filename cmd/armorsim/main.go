// Package main provides the armorsim binary, which resolves one attack against a
// configured defender many times and summarizes the outcomes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armorsim/internal/config"
	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/combat"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/dice"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
	"github.com/cory-johannsen/armorsim/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	bodyID := flag.String("body", "human", "body definition of the defender")
	partID := flag.String("part", "torso", "body part hit by the attack")
	weaponID := flag.String("weapon", "", "weapon ID; overrides -damage, -amount and -pen")
	damageID := flag.String("damage", "cut", "damage def ID")
	amount := flag.Float64("amount", 10, "raw damage amount")
	pen := flag.Float64("pen", 0.5, "armor penetration")
	wear := flag.String("wear", "", "comma-separated apparel IDs worn by the defender")
	shieldID := flag.String("shield", "", "shield apparel ID carried by the defender")
	natural := flag.String("natural", "", "comma-separated stat=value defender stats")
	mechanoid := flag.Bool("mechanoid", false, "defender is fully armored")
	crouch := flag.Bool("crouch", false, "defender is crouching")
	busy := flag.Bool("busy", false, "defender is mid-action")
	parryID := flag.String("parry", "", "apparel ID of an object that parries the attack instead")
	trials := flag.Int("trials", 1000, "number of resolutions to run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	c, err := loadContent(cfg.Content, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	stats, err := parseStats(*natural)
	if err != nil {
		logger.Fatal("parsing -natural", zap.Error(err))
	}
	b, ok := c.bodies[*bodyID]
	if !ok {
		logger.Fatal("unknown body", zap.String("body", *bodyID))
	}
	part, ok := b.Part(*partID)
	if !ok {
		logger.Fatal("unknown body part", zap.String("body", *bodyID), zap.String("part", *partID))
	}

	attack, err := buildAttack(c, *weaponID, *damageID, *amount, *pen, part)
	if err != nil {
		logger.Fatal("building attack", zap.Error(err))
	}

	src := dice.Source(dice.NewLoggedSource(dice.NewSource(cfg.Engine.Seed), observability.Component(logger, "dice")))
	resolver := combat.NewResolver(c.damage, c.items, src, logger, combat.Settings{
		DeflectEpsilon:    cfg.Engine.DeflectEpsilon,
		ParryCombatantMax: cfg.Engine.ParryCombatantMax,
		ParryObjectFactor: cfg.Engine.ParryObjectFactor,
	})

	logger.Info("running trials",
		zap.String("damage", attack.Def.ID),
		zap.String("part", part.ID),
		zap.Int("natural_armor_parts", len(b.PartsInGroup(body.GroupNaturalArmor))),
		zap.Int("trials", *trials),
		zap.Uint64("seed", cfg.Engine.Seed),
	)

	if *parryID != "" {
		var lost int
		for i := 0; i < *trials; i++ {
			obj, err := c.newWorn(*parryID)
			if err != nil {
				logger.Fatal("creating parry object", zap.Error(err))
			}
			before := obj.HP
			resolver.ApplyParry(attack, obj)
			lost += before - obj.HP
		}
		fmt.Printf("parried by %s: mean durability lost %.2f over %d trials\n",
			*parryID, float64(lost)/float64(max(1, *trials)), *trials)
		return
	}

	var sum summary
	for i := 0; i < *trials; i++ {
		eq, err := c.equip(splitList(*wear), *shieldID)
		if err != nil {
			logger.Fatal("equipping defender", zap.Error(err))
		}
		defender := &combat.Combatant{
			ID:        "defender",
			Name:      "Defender",
			Class:     combat.ClassFlesh,
			Body:      b,
			MaxHP:     100,
			CurrentHP: 100,
			Stats:     stats,
			Equipment: eq,
			Posture:   combat.Stance{Busy: *busy, Crouching: *crouch},
		}
		if *mechanoid {
			defender.Class = combat.ClassMechanoid
		}
		res := resolver.Resolve(attack, defender, part)
		sum.add(attack, res, len(eq.PruneDestroyed()))
	}
	sum.print(os.Stdout)
	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}

// content is the loaded definition set.
type content struct {
	damage *damage.Registry
	items  *inventory.Registry
	bodies map[string]*body.Body
}

// loadContent reads every definition file named by cc. A missing damage file
// falls back to the built-in table and a missing materials file to an empty one.
func loadContent(cc config.ContentConfig, logger *zap.Logger) (*content, error) {
	dmg, err := damage.LoadRegistry(cc.DamageFile)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("damage file not found, using built-in table", zap.String("path", cc.DamageFile))
		dmg, err = damage.DefaultRegistry(), nil
	}
	if err != nil {
		return nil, err
	}

	materials := map[string]inventory.MaterialClass{}
	if cc.MaterialsFile != "" {
		materials, err = inventory.LoadMaterials(cc.MaterialsFile)
		if errors.Is(err, fs.ErrNotExist) {
			materials, err = map[string]inventory.MaterialClass{}, nil
		}
		if err != nil {
			return nil, err
		}
	}

	items := inventory.NewRegistry(dmg, materials)
	apparel, err := inventory.LoadApparel(cc.ApparelDir)
	if err != nil {
		return nil, err
	}
	for _, a := range apparel {
		if err := items.RegisterApparel(a); err != nil {
			return nil, err
		}
	}
	weapons, err := inventory.LoadWeapons(cc.WeaponsDir)
	if err != nil {
		return nil, err
	}
	for _, w := range weapons {
		if err := items.RegisterWeapon(w); err != nil {
			return nil, err
		}
	}

	bodies, err := body.LoadBodies(cc.BodiesDir)
	if err != nil {
		return nil, err
	}

	logger.Info("content loaded",
		zap.Int("damage_defs", len(dmg.AllDefs())),
		zap.Int("materials", len(materials)),
		zap.Int("apparel", len(apparel)),
		zap.Int("weapons", len(weapons)),
		zap.Int("bodies", len(bodies)),
	)
	return &content{damage: dmg, items: items, bodies: bodies}, nil
}

// equip builds fresh, undamaged equipment.
func (c *content) equip(wear []string, shieldID string) (*inventory.Equipment, error) {
	eq := inventory.NewEquipment()
	ids := wear
	if shieldID != "" {
		ids = append(ids, shieldID)
	}
	for _, id := range ids {
		w, err := c.newWorn(id)
		if err != nil {
			return nil, err
		}
		if err := eq.Wear(w); err != nil {
			return nil, err
		}
	}
	return eq, nil
}

// newWorn creates a fresh instance of apparel id. An unknown id is reported
// together with every registered apparel ID.
func (c *content) newWorn(id string) (*inventory.Worn, error) {
	w, err := c.items.NewWorn(id)
	if err != nil {
		var known []string
		for _, a := range c.items.AllApparel() {
			known = append(known, a.ID)
		}
		return nil, fmt.Errorf("%w (known: %s)", err, strings.Join(known, ", "))
	}
	return w, nil
}

func buildAttack(c *content, weaponID, damageID string, amount, pen float64, part *body.Part) (combat.Attack, error) {
	if weaponID != "" {
		w := c.items.Weapon(weaponID)
		if w == nil {
			return combat.Attack{}, fmt.Errorf("unknown weapon %q", weaponID)
		}
		return combat.NewAttack(w, "attacker", part), nil
	}
	def, ok := c.damage.Def(damageID)
	if !ok {
		return combat.Attack{}, fmt.Errorf("unknown damage %q", damageID)
	}
	return combat.Attack{
		Def:         def,
		Amount:      amount,
		Penetration: pen,
		Instigator:  "attacker",
		Part:        part,
		Depth:       body.DepthOutside,
		Propagate:   true,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
