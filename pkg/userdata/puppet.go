package userdata

import "fmt"

// puppetAgentFlags are passed on every first-boot agent run: report the
// exact outcome through the exit code, wait for the CA to sign the new
// certificate, and exit instead of daemonizing so cloud-init sees the run
// complete.
var puppetAgentFlags = []string{
	"--detailed-exitcodes",
	"--no-report",
	"--waitforcert=60",
	"--onetime",
	"--no-daemonize",
	"--verbose",
}

// SetPuppetAgent adds the first-boot Puppet agent run command, pointing
// the agent at the given master and CA servers. The document's fqdn is
// used as the agent certificate name.
func (u *UserData) SetPuppetAgent(master, ca string) {
	args := append([]string{"puppet", "agent"}, puppetAgentFlags...)
	args = append(args,
		fmt.Sprintf("--fqdn=%s", u.fqdn),
		fmt.Sprintf("--server=%s", master),
		fmt.Sprintf("--ca_server=%s", ca),
	)
	u.AddRunCmd(args...)
}
