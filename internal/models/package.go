package models

// PackageStatusPending is the status a package starts with until reviewed.
const PackageStatusPending = "pending"
