package extract

// reportText mirrors the plain text of a generated NCRP complaint page.
const reportText = `Acknowledgement Number: 3998123456781
Category of complaint: Online Financial Fraud
Sub Category of Complaint: Internet Banking Related Fraud
Additional Information: N/A
UserId: 88123912312
Incident Date/Time: 15/05/2025 10:30 AM
Complaint Date: 16/05/2025
Complainant Details
Name: Rajesh Kumar
Mobile: 9876543210
Email: rajesh.dummy@email.com
Address: Flat 101, Sunshine Apts
District/State: Pune, Maharashtra
Fraudulent Transaction Details
Total Fraudulent Amount: 250,000.00
S No. Bank/Merchant Account No. Trans Id Amount Date
1 HDFC Bank XXXXXX1234 772901234567 100000 15/05/2025
2 HDFC Bank XXXXXX1234 772901234568 150000 15/05/2025
`

// reportLayout is the layout-preserving rendering of the same page.
const reportLayout = `Acknowledgement Number:          3998123456781
Category of complaint:           Online Financial Fraud
Sub Category of Complaint:       Internet Banking Related Fraud
Name:                            Rajesh Kumar
Mobile:                          9876543210
Email:                           rajesh.dummy@email.com
District/State:                  Pune, Maharashtra
S No.   Bank/Merchant   Account No.   Trans Id       Amount   Date
1       HDFC Bank       XXXXXX1234    772901234567   100000   15/05/2025
`
