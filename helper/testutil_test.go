package helper

import (
	"fmt"
	"strings"
	"testing"

	"coffeetek_pos/constants"
	"coffeetek_pos/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Mỗi test một DB in-memory riêng, cache=shared để mọi connection trong
	// pool nhìn cùng một DB
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Staff{},
		&model.Category{},
		&model.Product{},
		&model.ModifierGroup{},
		&model.Modifier{},
		&model.Table{},
		&model.Order{},
		&model.OrderDetail{},
		&model.OrderModifierDetail{},
		&model.OrderLog{},
	))
	return db
}

type fixture struct {
	CoffeeMilk model.Product // 30000, có nhóm Size bắt buộc + Topping
	BlackTea   model.Product // 45000, không có nhóm tùy chọn
	SizeM      model.Modifier
	SizeL      model.Modifier
	Pearl      model.Modifier
	Tables     []model.Table
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	size := model.ModifierGroup{GroupName: "Size", IsMultiSelect: false, IsRequired: true}
	topping := model.ModifierGroup{GroupName: "Topping", IsMultiSelect: true, IsRequired: false}
	require.NoError(t, db.Create(&size).Error)
	require.NoError(t, db.Create(&topping).Error)

	sizeM := model.Modifier{ModifierName: "Size M", GroupID: size.ID, ExtraPrice: 0}
	sizeL := model.Modifier{ModifierName: "Size L", GroupID: size.ID, ExtraPrice: 5000}
	pearl := model.Modifier{ModifierName: "Trân châu", GroupID: topping.ID, ExtraPrice: 7000}
	require.NoError(t, db.Create(&sizeM).Error)
	require.NoError(t, db.Create(&sizeL).Error)
	require.NoError(t, db.Create(&pearl).Error)

	coffee := model.Product{ProductName: "Cà phê sữa đá", Slug: "ca-phe-sua-da", PriceValue: 30000, IsActive: true}
	require.NoError(t, db.Create(&coffee).Error)
	require.NoError(t, db.Model(&coffee).Association("ModifierGroups").Append(&size, &topping))

	tea := model.Product{ProductName: "Trà đen", Slug: "tra-den", PriceValue: 45000, IsActive: true}
	require.NoError(t, db.Create(&tea).Error)

	tables := make([]model.Table, 0, 3)
	for i := 1; i <= 3; i++ {
		table := model.Table{
			TableName: fmt.Sprintf("Bàn %02d", i),
			Status:    constants.TableAvailable,
			IsActive:  true,
		}
		require.NoError(t, db.Create(&table).Error)
		tables = append(tables, table)
	}

	return fixture{
		CoffeeMilk: coffee,
		BlackTea:   tea,
		SizeM:      sizeM,
		SizeL:      sizeL,
		Pearl:      pearl,
		Tables:     tables,
	}
}

func sizeMSelection(fx fixture) []model.OrderModifierInput {
	return []model.OrderModifierInput{{ModifierID: fx.SizeM.ID}}
}
