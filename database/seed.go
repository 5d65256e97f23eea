package database

import (
	"log"

	"coffeetek_pos/constants"
	"coffeetek_pos/helper"
	"coffeetek_pos/model"
	"coffeetek_pos/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456ct"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456ct"
	}
	staffs := []model.Staff{
		{Username: "admin", Password: HashPassword, FullName: "Quản lý", Role: constants.ROLE_ADMIN, Active: true},
		{Username: "thungan01", Password: HashPassword, FullName: "Thu ngân 1", Role: constants.ROLE_CASHIER, Active: true},
	}
	for _, staff := range staffs {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Staff{Username: staff.Username}).FirstOrCreate(&staff).Error; err != nil {
			log.Println("failed to seed staff:", staff.Username, "error:", err)
		}
	}

	tables := []model.Table{
		{TableName: "Bàn 01", Status: constants.TableAvailable, Shape: "SQUARE", Color: "#FFFFFF"},
		{TableName: "Bàn 02", Status: constants.TableAvailable, Shape: "SQUARE", Color: "#FFFFFF"},
		{TableName: "Bàn 03", Status: constants.TableAvailable, Shape: "CIRCLE", Color: "#FFF8DC"},
		{TableName: "Bàn 04", Status: constants.TableAvailable, Shape: "CIRCLE", Color: "#FFF8DC"},
		{TableName: "Bàn 05", Status: constants.TableAvailable, Shape: "RECT", Color: "#E6F7FF"},
		{TableName: "Bàn 06", Status: constants.TableAvailable, Shape: "RECT", Color: "#E6F7FF"},
	}
	for _, table := range tables {
		if err := db.Where(model.Table{TableName: table.TableName}).FirstOrCreate(&table).Error; err != nil {
			log.Println("failed to seed table:", table.TableName, "error:", err)
		}
	}

	categories := []model.Category{
		{CategoryName: "Cà phê"},
		{CategoryName: "Trà sữa"},
		{CategoryName: "Đá xay"},
	}
	for i := range categories {
		if err := db.Where(model.Category{CategoryName: categories[i].CategoryName}).
			FirstOrCreate(&categories[i]).Error; err != nil {
			log.Println("failed to seed category:", categories[i].CategoryName, "error:", err)
		}
	}

	sizeGroup := model.ModifierGroup{GroupName: "Size", IsMultiSelect: false, IsRequired: true}
	toppingGroup := model.ModifierGroup{GroupName: "Topping", IsMultiSelect: true, IsRequired: false}
	sugarGroup := model.ModifierGroup{GroupName: "Mức đường", IsMultiSelect: false, IsRequired: false}
	for _, g := range []*model.ModifierGroup{&sizeGroup, &toppingGroup, &sugarGroup} {
		if err := db.Where(model.ModifierGroup{GroupName: g.GroupName}).FirstOrCreate(g).Error; err != nil {
			log.Println("failed to seed modifier group:", g.GroupName, "error:", err)
		}
	}

	modifiers := []model.Modifier{
		{ModifierName: "Size M", GroupID: sizeGroup.ID, ExtraPrice: 0},
		{ModifierName: "Size L", GroupID: sizeGroup.ID, ExtraPrice: 5000},
		{ModifierName: "Trân châu", GroupID: toppingGroup.ID, ExtraPrice: 7000},
		{ModifierName: "Thạch cà phê", GroupID: toppingGroup.ID, ExtraPrice: 8000},
		{ModifierName: "Kem muối", GroupID: toppingGroup.ID, ExtraPrice: 10000},
		{ModifierName: "100% đường", GroupID: sugarGroup.ID, ExtraPrice: 0},
		{ModifierName: "50% đường", GroupID: sugarGroup.ID, ExtraPrice: 0},
	}
	for _, m := range modifiers {
		if err := db.Where(model.Modifier{ModifierName: m.ModifierName, GroupID: m.GroupID}).
			FirstOrCreate(&m).Error; err != nil {
			log.Println("failed to seed modifier:", m.ModifierName, "error:", err)
		}
	}

	products := []model.Product{
		{ProductName: "Cà phê sữa đá", PriceValue: 30000, CategoryID: categories[0].ID, IsActive: true,
			ImageUrl: utils.StringPtr("/images/ca-phe-sua-da.jpg")},
		{ProductName: "Cà phê đen", PriceValue: 25000, CategoryID: categories[0].ID, IsActive: true,
			ImageUrl: utils.StringPtr("/images/ca-phe-den.jpg")},
		{ProductName: "Trà sữa trân châu", PriceValue: 40000, CategoryID: categories[1].ID, IsActive: true,
			ImageUrl: utils.StringPtr("/images/tra-sua-tran-chau.jpg")},
		{ProductName: "Cookie đá xay", PriceValue: 55000, CategoryID: categories[2].ID, IsActive: true,
			ImageUrl: utils.StringPtr("/images/cookie-da-xay.jpg")},
	}
	for i := range products {
		var existing model.Product
		err := db.Where("product_name = ?", products[i].ProductName).First(&existing).Error
		if err == nil {
			continue
		}
		products[i].Slug = helper.GenerateUniqueProductSlug(db, products[i].ProductName)
		if err := db.Create(&products[i]).Error; err != nil {
			log.Println("failed to seed product:", products[i].ProductName, "error:", err)
			continue
		}
		// Gắn nhóm tùy chọn mặc định cho món mới seed
		if err := db.Model(&products[i]).Association("ModifierGroups").
			Append(&sizeGroup, &toppingGroup, &sugarGroup); err != nil {
			log.Println("failed to link modifier groups for:", products[i].ProductName, "error:", err)
		}
	}
}
