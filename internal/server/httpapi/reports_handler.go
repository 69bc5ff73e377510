package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// scoutReport streams an xlsx workbook listing every scout with their
// affiliate code and referral count.
func (s *Server) scoutReport(c *gin.Context) {
	rows, err := s.scouts.Report(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Scouts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		s.internalError(c, err)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Name", "Email", "Affiliate Code", "Referrals"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			s.internalError(c, err)
			return
		}
	}

	for i, row := range rows {
		values := []any{row.Name, row.Email, row.AffiliateCode, row.ReferralCount}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				s.internalError(c, err)
				return
			}
		}
	}

	c.Header("Content-Disposition", `attachment; filename="scout-report.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; all we can do is log.
		s.logger.Error(c.Request.Context(), fmt.Sprintf("report write failed: %v", err))
	}
}
