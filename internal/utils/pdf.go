package utils

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"backend/internal/billing"
)

// 区间开始原因的中文展示名
var operationNames = map[string]string{
	billing.OpPowerOn:     "开机",
	billing.OpSpeedChange: "调整风速",
	billing.OpRotated:     "时间片轮转",
	billing.OpPromoted:    "空位回填",
	billing.OpAutoRestart: "自动重启",
}

// 区间结束原因的中文展示名
var closeReasonNames = map[string]string{
	billing.ClosePowerOff:      "关机",
	billing.ClosePreempted:     "被抢占",
	billing.CloseRotatedOut:    "轮转换出",
	billing.CloseTargetReached: "达到目标温度",
	billing.CloseSpeedChange:   "调整风速",
	billing.CloseReplaced:      "重复开机",
}

// GenerateBillPDF 生成房间空调费用详单 PDF
func GenerateBillPDF(bill *billing.Bill, details []billing.Record) (*gofpdf.Fpdf, error) {
	// 横向A4纸
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// 添加中文字体
	pdf.AddUTF8Font("chinese", "", "./SimHei.ttf")

	// 标题
	pdf.SetFont("chinese", "", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(280, 15, "波普特酒店 - 空调使用详单")
	pdf.Ln(20)

	pdf.Line(10, pdf.GetY(), 280, pdf.GetY())
	pdf.Ln(5)

	// 基本信息
	pdf.SetFont("chinese", "", 11)
	pdf.Cell(20, 8, "房间号:")
	pdf.SetTextColor(0, 102, 204)
	pdf.Cell(30, 8, fmt.Sprintf("%d", bill.RoomID))
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(25, 8, "详单条数:")
	pdf.Cell(30, 8, fmt.Sprintf("%d", bill.RecordCount))
	pdf.Ln(10)

	pdf.Ln(5)
	pdf.Line(10, pdf.GetY(), 280, pdf.GetY())
	pdf.Ln(5)

	drawDetailTable(pdf, details)

	// 总计
	pdf.Ln(5)
	pdf.SetFont("chinese", "", 12)
	pdf.SetTextColor(0, 102, 204)
	pdf.Cell(180, 10, "总能耗:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f度", bill.TotalEnergy))
	pdf.Cell(20, 10, "总费用:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f元", bill.TotalCost))

	drawFooter(pdf)

	// gofpdf 的错误是粘滞的（比如字体文件缺失），在写响应前暴露出来
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("渲染详单PDF失败: %w", err)
	}
	return pdf, nil
}

func drawDetailTable(pdf *gofpdf.Fpdf, details []billing.Record) {
	headers := []struct {
		width float64
		name  string
	}{
		{30, "开始(秒)"},
		{30, "结束(秒)"},
		{25, "模式"},
		{25, "目标温度"},
		{20, "风速"},
		{25, "能耗(度)"},
		{25, "费用(元)"},
		{35, "开始原因"},
		{35, "结束原因"},
	}

	pdf.SetFont("chinese", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(0, 0, 0)

	for _, h := range headers {
		pdf.CellFormat(h.width, 10, h.name, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFillColor(255, 255, 255)
	for _, d := range details {
		end := "进行中"
		if d.EndSeconds != nil {
			end = fmt.Sprintf("%.1f", *d.EndSeconds)
		}
		cells := []struct {
			width float64
			text  string
		}{
			{30, fmt.Sprintf("%.1f", d.StartSeconds)},
			{30, end},
			{25, modeName(d.Mode)},
			{25, fmt.Sprintf("%.1f", d.TargetTemp)},
			{20, speedName(d.FanSpeed)},
			{25, fmt.Sprintf("%.3f", d.Energy)},
			{25, fmt.Sprintf("%.2f", d.Cost)},
			{35, displayName(operationNames, d.Operation)},
			{35, displayName(closeReasonNames, d.CloseReason)},
		}
		for _, cell := range cells {
			pdf.CellFormat(cell.width, 8, cell.text, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func drawFooter(pdf *gofpdf.Fpdf) {
	pdf.Ln(8)
	pdf.SetFont("chinese", "", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(280, 8, "本详单由酒店中央空调计费系统自动生成，时间均为模拟时钟读数")
}

func modeName(mode string) string {
	switch mode {
	case "cooling":
		return "制冷"
	case "heating":
		return "制热"
	}
	return mode
}

func speedName(speed string) string {
	switch speed {
	case "low":
		return "低"
	case "medium":
		return "中"
	case "high":
		return "高"
	}
	return speed
}

func displayName(names map[string]string, key string) string {
	if key == "" {
		return "-"
	}
	if name, ok := names[key]; ok {
		return name
	}
	return key
}
