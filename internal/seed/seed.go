// Package seed loads a small demo dataset through the service layer so every
// weapon state in it is produced by ledger entries.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/service"
)

// ErrNotEmpty is returned when the database already holds data.
var ErrNotEmpty = errors.New("database is not empty")

// Counter reports table sizes.
type Counter interface {
	Counts(ctx context.Context) (model.Counts, error)
}

var governments = []service.GovernmentInput{
	{
		Name:          "United States Department of Defense",
		CountryCode:   "US",
		ContactEmail:  "procurement@dod.gov",
		ContactPerson: "Gen. James Mitchell",
		Phone:         "+1-703-555-0100",
		Address:       "The Pentagon, Arlington, VA 22202",
	},
	{
		Name:          "Ministero della Difesa Italiano",
		CountryCode:   "IT",
		ContactEmail:  "acquisizioni@difesa.it",
		ContactPerson: "Gen. Marco Rossi",
		Phone:         "+39-06-555-0200",
		Address:       "Via XX Settembre 8, 00187 Roma",
	},
	{
		Name:          "Bundesministerium der Verteidigung",
		CountryCode:   "DE",
		ContactEmail:  "beschaffung@bmvg.bund.de",
		ContactPerson: "Gen. Klaus Weber",
		Phone:         "+49-30-555-0300",
		Address:       "Stauffenbergstraße 18, 10785 Berlin",
	},
}

var weaponTypes = []service.WeaponTypeInput{
	{Name: "M4A1 Carbine", Category: model.WeaponCategorySmallArms, Brand: "Colt Defense", Description: "Standard NATO assault rifle, 5.56mm"},
	{Name: "Beretta ARX200", Category: model.WeaponCategorySmallArms, Brand: "Beretta", Description: "Italian assault rifle, 7.62mm NATO"},
	{Name: "M777 Howitzer", Category: model.WeaponCategoryArtillery, Brand: "BAE Systems", Description: "Ultralight 155mm howitzer"},
	{Name: "Leopard 2A7", Category: model.WeaponCategoryArmoredVehicles, Brand: "Rheinmetall", Description: "Main battle tank"},
	{Name: "F-35A Lightning II", Category: model.WeaponCategoryAircraft, Brand: "Lockheed Martin", Description: "Fifth generation multirole stealth fighter"},
}

// weaponSeed references its type by index into weaponTypes.
type weaponSeed struct {
	serial   string
	typeIdx  int
	acquired string
}

var weapons = []weaponSeed{
	{"M4A1-2024-001", 0, "2024-01-15"},
	{"ARX200-2024-001", 1, "2024-03-10"},
	{"LEO2A7-2023-001", 3, "2023-06-20"},
	{"F35A-2024-001", 4, "2024-02-28"},
}

var equipment = []service.EquipmentInput{
	{
		Name:         "CRITICA III+ Body Armor",
		SerialNumber: "VEST-2024-001",
		Category:     model.EquipmentCategoryProtectiveGear,
		Brand:        "Point Blank",
		Quantity:     500,
		Description:  "Level III+ vest with ceramic plates",
	},
	{
		Name:         "AN/PVS-14 Night Vision Monocular",
		SerialNumber: "NVG-2024-001",
		Category:     model.EquipmentCategoryOptics,
		Brand:        "L3Harris",
		Quantity:     200,
		Description:  "Gen III night vision monocular",
	},
}

// transactionSeed references its weapon and parties by index; -1 means none.
type transactionSeed struct {
	typ      model.TransactionType
	weapon   int
	from, to int
	contract string
	value    string
	currency string
	details  string
	date     string
}

// Chronological, so replaying them yields the final weapon states.
var transactions = []transactionSeed{
	{model.TransactionSale, 2, -1, 2, "CONTRACT-DE-2023-001", "15000000", "EUR", "Leopard 2A7 supply for the Bundeswehr", "2023-06-20"},
	{model.TransactionRepair, 2, 2, -1, "", "", "", "Scheduled overhaul of engine and fire control", "2024-01-10"},
	{model.TransactionSale, 0, -1, 0, "CONTRACT-US-2024-001", "1200000", "USD", "Sale of M4A1 units to the US Department of Defense", "2024-01-15"},
	{model.TransactionDelivery, 0, -1, 0, "CONTRACT-US-2024-001", "", "", "Delivered by military airlift", "2024-02-01"},
	{model.TransactionSale, 3, -1, 1, "CONTRACT-IT-2024-001", "95000000", "EUR", "F-35A purchase for the Italian Air Force", "2024-02-28"},
}

// Run loads the demo dataset. It refuses to touch a database that already
// holds any governments, weapons, equipment or transactions.
func Run(ctx context.Context, svc *service.Service, counter Counter, log *zap.Logger) (model.Counts, error) {
	c, err := counter.Counts(ctx)
	if err != nil {
		return model.Counts{}, fmt.Errorf("counting rows: %w", err)
	}
	if c != (model.Counts{}) {
		return c, ErrNotEmpty
	}

	govIDs := make([]string, 0, len(governments))
	for _, in := range governments {
		g, err := svc.CreateGovernment(ctx, in)
		if err != nil {
			return c, fmt.Errorf("creating government %s: %w", in.Name, err)
		}
		govIDs = append(govIDs, g.ID)
	}

	typeIDs := make([]string, 0, len(weaponTypes))
	for _, in := range weaponTypes {
		wt, err := svc.CreateWeaponType(ctx, in)
		if err != nil {
			return c, fmt.Errorf("creating weapon type %s: %w", in.Name, err)
		}
		typeIDs = append(typeIDs, wt.ID)
	}

	weaponIDs := make([]string, 0, len(weapons))
	for _, ws := range weapons {
		acquired, err := day(ws.acquired)
		if err != nil {
			return c, err
		}
		w, err := svc.CreateWeapon(ctx, service.WeaponInput{
			SerialNumber:    ws.serial,
			WeaponTypeID:    typeIDs[ws.typeIdx],
			AcquisitionDate: &acquired,
		})
		if err != nil {
			return c, fmt.Errorf("creating weapon %s: %w", ws.serial, err)
		}
		weaponIDs = append(weaponIDs, w.ID)
	}

	for _, in := range equipment {
		if _, err := svc.CreateEquipment(ctx, in); err != nil {
			return c, fmt.Errorf("creating equipment %s: %w", in.Name, err)
		}
	}

	pick := func(ids []string, i int) string {
		if i < 0 {
			return ""
		}
		return ids[i]
	}
	for _, ts := range transactions {
		when, err := day(ts.date)
		if err != nil {
			return c, err
		}
		in := service.TransactionInput{
			Type:           ts.typ,
			WeaponID:       pick(weaponIDs, ts.weapon),
			FromID:         pick(govIDs, ts.from),
			ToID:           pick(govIDs, ts.to),
			ContractNumber: ts.contract,
			Currency:       ts.currency,
			Details:        ts.details,
			Timestamp:      &when,
		}
		if ts.value != "" {
			v := decimal.RequireFromString(ts.value)
			in.Value = &v
		}
		if _, err := svc.CreateTransaction(ctx, in); err != nil {
			return c, fmt.Errorf("recording %s transaction: %w", ts.typ, err)
		}
	}

	c = model.Counts{
		Governments:  len(governments),
		Weapons:      len(weapons),
		Equipment:    len(equipment),
		Transactions: len(transactions),
	}
	log.Info("database seeded",
		zap.Int("governments", c.Governments),
		zap.Int("weapon_types", len(weaponTypes)),
		zap.Int("weapons", c.Weapons),
		zap.Int("equipment", c.Equipment),
		zap.Int("transactions", c.Transactions),
	)
	return c, nil
}

func day(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing seed date %q: %w", s, err)
	}
	return t, nil
}
