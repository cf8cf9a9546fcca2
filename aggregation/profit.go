package aggregation

import (
	"strings"
	"time"

	"posdesk/model"
)

const halfPortionSuffix = "(Half)"

// ComputeProfit joins the cart lines of a date range against the hotel's menu
// and accumulates per-item profit. Purchase cost comes from the menu item
// whose submenu matches the line name; half-portion lines keep their own row
// but resolve against the full item at half its purchase price. Lines with no
// matching menu item contribute nothing.
func ComputeProfit(txs []model.Transaction, menu []model.MenuItem, hotel string, start, end time.Time) model.ProfitReport {
	bySubmenu := make(map[string]model.MenuItem, len(menu))
	for _, item := range menu {
		bySubmenu[item.Submenu] = item
	}

	ranged := FilterByDateRange(txs, hotel, start, end)

	report := model.ProfitReport{Items: []model.ProfitLine{}}
	index := make(map[string]int)

	for _, t := range ranged {
		for _, line := range t.CartData {
			name := line.Name
			lookup := name
			half := false
			if strings.HasSuffix(name, halfPortionSuffix) {
				lookup = strings.TrimSpace(strings.TrimSuffix(name, halfPortionSuffix))
				half = true
			}

			item, ok := bySubmenu[lookup]
			if !ok {
				continue
			}

			purchase := item.PurchasePrice.Float64()
			if half {
				purchase /= 2
			}
			qty := line.Qty.Float64()
			sell := line.SellPrice.Float64()
			profit := (sell - purchase) * qty

			i, seen := index[name]
			if !seen {
				index[name] = len(report.Items)
				report.Items = append(report.Items, model.ProfitLine{
					Name:          name,
					QtySold:       qty,
					SellingPrice:  sell,
					PurchasePrice: purchase,
					TotalProfit:   profit,
				})
			} else {
				report.Items[i].QtySold += qty
				report.Items[i].TotalProfit += profit
			}
			report.TotalProfit += profit
		}
	}
	return report
}
