package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/harmonyhq/harmony_academy/configs"
	"github.com/harmonyhq/harmony_academy/database"
	"github.com/harmonyhq/harmony_academy/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head><style>
body { font-family: Georgia, serif; margin: 48px; color: #1a1a2e; }
h1 { color: #5b21b6; border-bottom: 2px solid #5b21b6; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
td { padding: 8px 0; border-bottom: 1px solid #ddd; }
td.label { color: #666; width: 40%; }
.footer { margin-top: 48px; font-size: 12px; color: #999; }
</style></head>
<body>
<h1>Harmony Academy — Enrollment Receipt</h1>
<table>
<tr><td class="label">Receipt No.</td><td>{{.ReceiptNumber}}</td></tr>
<tr><td class="label">Student</td><td>{{.Email}}</td></tr>
<tr><td class="label">Class</td><td>{{.ClassName}}</td></tr>
<tr><td class="label">Amount Paid</td><td>${{printf "%.2f" .Price}}</td></tr>
<tr><td class="label">Date</td><td>{{.Date}}</td></tr>
</table>
<p class="footer">Thank you for enrolling. Keep this receipt for your records.</p>
</body>
</html>`

// GenerateEnrollmentReceipt renders a PDF receipt for a completed
// enrollment, uploads it and attaches the URL to the enrollment record.
// Runs in the background after the transaction commits; a failure here
// never unwinds the enrollment itself.
func GenerateEnrollmentReceipt(enrollmentID uuid.UUID) {
	var enrollment models.Enrollment
	if err := database.DB.First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
		log.Printf("🔥 Receipt generation: enrollment %s not found: %v", enrollmentID, err)
		return
	}

	htmlData, err := renderReceiptHTML(enrollment)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadReceiptToCloudinary(pdfBytes, enrollment.ReceiptNumber)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt to Cloudinary: %v", err)
		return
	}

	if err := database.DB.Model(&enrollment).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to attach receipt URL to enrollment %s: %v", enrollment.ID, err)
		return
	}

	log.Printf("✅ Generated receipt %s for enrollment %s.", enrollment.ReceiptNumber, enrollment.ID)
}

func renderReceiptHTML(enrollment models.Enrollment) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		ReceiptNumber string
		Email         string
		ClassName     string
		Price         float64
		Date          string
	}{
		ReceiptNumber: enrollment.ReceiptNumber,
		Email:         enrollment.Email,
		ClassName:     enrollment.ClassName,
		Price:         enrollment.Price,
		Date:          enrollment.CreatedAt.Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptToCloudinary(fileBytes []byte, receiptNumber string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s", receiptNumber),
		Folder:       "harmony_academy_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
