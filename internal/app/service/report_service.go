package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/nsharma/shopmitra-backend/internal/app/repository"
	"github.com/nsharma/shopmitra-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const orderSheetName = "Orders"

// ReportService builds spreadsheet exports for back-office staff.
type ReportService interface {
	ExportOrders() (*bytes.Buffer, string, error)
}

type reportService struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) ReportService {
	return &reportService{
		orderRepo: orderRepo,
	}
}

var orderExportHeader = []string{
	"Order Number", "Customer", "Email", "Status", "Payment Method",
	"COD Paid", "Items", "Tax", "Shipping", "Total", "Created At",
	"Delivered At", "Cancelled At",
}

// ExportOrders renders every order into an xlsx workbook and returns the
// serialized bytes along with a timestamped filename.
func (s *reportService) ExportOrders() (*bytes.Buffer, string, error) {
	logger.Info("Exporting orders to spreadsheet", nil)

	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch orders for export", err, nil)
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(orderSheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range orderExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(orderSheetName, cell, title); err != nil {
			return nil, "", err
		}
	}

	for i, order := range orders {
		itemCount := 0
		for _, item := range order.OrderItems {
			itemCount += item.Quantity
		}

		row := []interface{}{
			order.OrderNumber,
			order.Customer.Name,
			order.Customer.Email,
			string(order.OrderStatus),
			string(order.PaymentInfo.Method),
			order.PaymentInfo.CodPaid,
			itemCount,
			order.TaxPrice,
			order.ShippingPrice,
			order.TotalPrice,
			order.CreatedAt.Format(time.RFC3339),
			formatOptionalTime(order.DeliveredAt),
			formatOptionalTime(order.CancelledAt),
		}

		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(orderSheetName, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to serialize order export", err, nil)
		return nil, "", err
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
	logger.Info("Orders exported successfully", map[string]interface{}{
		"order_count": len(orders),
		"filename":    filename,
	})
	return buf, filename, nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
