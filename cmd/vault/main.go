package main

import "github.com/MKhiriev/group-vault/cmd/vault/cmd"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cmd.SetBuildInfo(buildVersion, buildDate, buildCommit)
	cmd.Execute()
}
