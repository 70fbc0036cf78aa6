package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/erazemk/arsenal/internal/model"
)

func TestWriteTransactions(t *testing.T) {
	value := decimal.RequireFromString("1500000")
	txs := []model.Transaction{
		{
			ID: "t1", Type: model.TransactionSale, Asset: model.WeaponRef("w1"),
			WeaponSerial: "M4-001", WeaponTypeName: "M4A1",
			FromName: "United States", ToName: "Italy", ContractNumber: "C-42",
			Value: &value, Currency: "USD",
			Timestamp: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID: "t2", Type: model.TransactionDelivery, Asset: model.EquipmentRef("e1"),
			EquipmentName: "Night vision goggles", Currency: "EUR",
			Timestamp: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Timestamp", rows[0][0])
	assert.Equal(t, "ID", rows[0][12])

	assert.Equal(t, "2024-03-01 10:30:00", rows[1][0])
	assert.Equal(t, "Sale", rows[1][1])
	assert.Equal(t, "Weapon", rows[1][2])
	assert.Equal(t, "M4-001", rows[1][3])
	assert.Equal(t, "Italy", rows[1][6])
	assert.Equal(t, "1500000.00", rows[1][8])

	assert.Equal(t, "Equipment", rows[2][2])
	assert.Equal(t, "Night vision goggles", rows[2][3])
	assert.Equal(t, "", rows[2][8])
	assert.Equal(t, "EUR", rows[2][9])
}

func TestWriteTransactionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "transactions_2024-03-01.xlsx", Filename(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)))
}
