package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/dhc007/bolt91/internal/models"
)

// ProductRepository handles product catalog database operations
type ProductRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, name_hi, description, description_hi, price, discounted_price, security_deposit, category, image_url, created_at`

// List returns all products (cycle + accessories)
func (r *ProductRepository) List() ([]models.Product, error) {
	products := []models.Product{}
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY category, id`, productColumns)

	if err := r.db.Select(&products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetByIDs resolves the given product ids to a lookup map. Ids that do not
// exist are simply absent from the result; the caller decides whether that
// is an error.
func (r *ProductRepository) GetByIDs(ids []string) (map[string]models.Product, error) {
	result := make(map[string]models.Product)
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id IN (%s)`,
		productColumns, strings.Join(placeholders, ", "))

	products := []models.Product{}
	if err := r.db.Select(&products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	for _, p := range products {
		result[p.ID] = p
	}

	return result, nil
}

// Count returns the number of products in the catalog
func (r *ProductRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Seed inserts the fixed launch catalog if the table is empty
func (r *ProductRepository) Seed() (int, error) {
	count, err := r.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	query := `
		INSERT INTO products (id, name, name_hi, description, description_hi, price, discounted_price, security_deposit, category, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, p := range seedCatalog {
		if _, err := r.db.Exec(query,
			p.ID, p.Name, p.NameHi, p.Description, p.DescriptionHi,
			p.Price, p.DiscountedPrice, p.SecurityDeposit, p.Category, p.ImageURL,
			time.Now().UTC(),
		); err != nil {
			return 0, fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	return len(seedCatalog), nil
}

// seedCatalog is the launch catalog: one electric cycle plus accessories.
// Accessories carry no security deposit.
var seedCatalog = []models.Product{
	{
		ID:              "cycle-1",
		Name:            "Premium Electric Cycle",
		NameHi:          "प्रीमियम इलेक्ट्रिक साइकिल",
		Description:     "Premium e-bike with cutting-edge accessories",
		DescriptionHi:   "आधुनिक एक्सेसरीज़ के साथ प्रीमियम ई-बाइक",
		Price:           499.0,
		DiscountedPrice: 449.0,
		SecurityDeposit: 2000.0,
		Category:        models.CategoryCycle,
		ImageURL:        "https://images.pexels.com/photos/5784358/pexels-photo-5784358.jpeg",
	},
	{
		ID:              "acc-1",
		Name:            "Meta Ray-Ban Smart Glasses",
		NameHi:          "मेटा रे-बैन स्मार्ट चश्मा",
		Description:     "Capture moments hands-free",
		DescriptionHi:   "हाथों के बिना पल कैद करें",
		Price:           1000.0,
		DiscountedPrice: 1000.0,
		Category:        models.CategoryAccessory,
		ImageURL:        "https://images.unsplash.com/photo-1572635196237-14b3f281503f",
	},
	{
		ID:              "acc-2",
		Name:            "Smart Helmet with HUD",
		NameHi:          "स्मार्ट हेलमेट एचयूडी के साथ",
		Description:     "Navigation in your vision",
		DescriptionHi:   "आपकी दृष्टि में नेविगेशन",
		Price:           250.0,
		DiscountedPrice: 250.0,
		Category:        models.CategoryAccessory,
		ImageURL:        "https://images.unsplash.com/photo-1581598584785-09d9b7aa2b05",
	},
	{
		ID:              "acc-3",
		Name:            "GoPro Hero 11",
		NameHi:          "गोप्रो हीरो 11",
		Description:     "4K adventure recording",
		DescriptionHi:   "4K एडवेंचर रिकॉर्डिंग",
		Price:           1200.0,
		DiscountedPrice: 1200.0,
		Category:        models.CategoryAccessory,
		ImageURL:        "https://images.unsplash.com/photo-1690176483540-421999eea5dd",
	},
	{
		ID:              "acc-4",
		Name:            "Portable Power Bank",
		NameHi:          "पोर्टेबल पावर बैंक",
		Description:     "Never run out of charge",
		DescriptionHi:   "कभी चार्ज खत्म नहीं",
		Price:           150.0,
		DiscountedPrice: 150.0,
		Category:        models.CategoryAccessory,
		ImageURL:        "https://images.pexels.com/photos/518530/pexels-photo-518530.jpeg",
	},
	{
		ID:              "acc-5",
		Name:            "Premium Phone Mount",
		NameHi:          "प्रीमियम फोन माउंट",
		Description:     "Secure navigation setup",
		DescriptionHi:   "सुरक्षित नेविगेशन",
		Price:           100.0,
		DiscountedPrice: 100.0,
		Category:        models.CategoryAccessory,
		ImageURL:        "https://images.unsplash.com/photo-1761721576781-baaf47945242",
	},
	{
		ID:              "acc-6",
		Name:            "Bluetooth Speaker",
		NameHi:          "ब्लूटूथ स्पीकर",
		Description:     "Soundtrack your journey",
		DescriptionHi:   "अपनी यात्रा को संगीतमय बनाएं",
		Price:           200.0,
		DiscountedPrice: 200.0,
		Category:        models.CategoryAccessory,
		ImageURL:        "https://images.unsplash.com/photo-1589256469067-ea99122bbdc4",
	},
}
