package bot

import (
	"strings"

	"github.com/pagalworld/verifybot/core/telegram/format"
	"github.com/pagalworld/verifybot/roster"
)

const joinButtonText = "🌍 Join Pagal World 🌍"

const superAdminMenuText = "👑 <b>SUPER ADMIN DASHBOARD</b> 👑\n\n" +
	"Welcome! You have full administrative privileges. Here are your commands:\n\n" +
	"<b>Management:</b>\n" +
	"➤ /add_admin <code>@username</code>\n" +
	"➤ /remove_admin <code>@username</code>\n" +
	"➤ /promote <code>@username</code>\n" +
	"➤ /demote <code>@username</code>\n" +
	"➤ /admins - View all admins\n\n" +
	"<b>Payment Details:</b>\n" +
	"➤ /setadmin_crypto <code>@username ADDRESS</code>\n" +
	"➤ /setadmin_upi <code>@username UPI_ID</code>"

const adminMenuText = "🛡️ <b>ADMIN DASHBOARD</b> 🛡️\n\n" +
	"Welcome, Admin. Here are your available commands:\n\n" +
	"➤ /admins - View the list of all admins."

const publicWelcomeText = "🛡️ <b>Welcome to the Verification Bot!</b> 🛡️\n\n" +
	"I am here to help you perform safe and secure transactions within our community.\n\n" +
	"In our main group, you can use the /verify command to check if a Crypto Address or UPI ID belongs to one of our trusted admins.\n\n" +
	"Click the button below to join our main group!"

const groupStartText = "🔐 <b>Pagal World Verification Bot</b>\n\n" +
	"I'm active and ready to protect you from scams!\n\n" +
	"➡️ Use <code>/verify [address or UPI]</code> to check a payment detail."

const accessDeniedText = "🚫 <b>Access Denied</b>\nThis command is for Super Admins only."

const noAdminsText = "No admins are currently registered in the database."

const verifyUsageText = "ℹ️ <b>How to Verify</b>\n\n" +
	"Please provide an address or UPI ID to check.\n\n" +
	"<b>Example:</b>\n" +
	"<code>/verify YourCryptoAddressHere</code>\n" +
	"<code>/verify your-upi@id</code>"

const genericErrorText = "⚙️ An unexpected error occurred. Please try again later."

func activatedText(username string) string {
	return "🔑 <b>Admin Account Activated!</b>\n\n" +
		"Welcome, @" + format.EscapeHTML(username) + ". Your Telegram account is now successfully linked to your admin profile.\n\n" +
		"You can now use your assigned commands. Type /start again to see them."
}

func adminListText(admins []roster.Admin) string {
	var b strings.Builder
	b.WriteString("👥 <b>Registered Admin Team</b> 👥\n")
	for _, admin := range admins {
		role := "🛡️ Admin"
		if admin.IsSuperAdmin {
			role = "👑 Super Admin"
		}
		linked := "⚠️"
		if admin.Linked() {
			linked = "✅"
		}
		var methods []string
		if admin.CryptoAddress.Valid && admin.CryptoAddress.String != "" {
			methods = append(methods, "💰")
		}
		if admin.UPIID.Valid && admin.UPIID.String != "" {
			methods = append(methods, "💳")
		}
		methodIcons := "None"
		if len(methods) > 0 {
			methodIcons = strings.Join(methods, " ")
		}

		b.WriteString("\n• <b>@" + format.EscapeHTML(admin.Username) + "</b>\n")
		b.WriteString("  Status: " + role + "\n")
		b.WriteString("  Account Linked: " + linked + "\n")
		b.WriteString("  Payment Methods: " + methodIcons + "\n")
	}
	b.WriteString("\n\n— — — — — — — — — —\n" +
		"<b>Key:</b>\n" +
		"✅ - Account linked to the bot.\n" +
		"⚠️ - Admin added, but needs to /start the bot.\n" +
		"💰 - Crypto Address is set.\n" +
		"💳 - UPI ID is set.")
	return b.String()
}

func verifiedText(value string, admin *roster.Admin) string {
	roleEmoji := "🛡️"
	if admin.IsSuperAdmin {
		roleEmoji = "👑"
	}
	return "✅ <b>VERIFIED & TRUSTED</b> ✅\n\n" +
		"This payment detail is confirmed and secure.\n\n" +
		"<b>Address/ID:</b>\n" +
		format.Code(value) + "\n\n" +
		"It belongs to our trusted admin:\n" +
		"➡️ <b>@" + format.EscapeHTML(admin.Username) + "</b> " + roleEmoji
}

func unverifiedText(value string) string {
	return "🚨 <b>WARNING: UNVERIFIED</b> 🚨\n\n" +
		"This payment detail was <b>NOT FOUND</b> in our secure database.\n\n" +
		"<b>Address/ID Checked:</b>\n" +
		format.Code(value) + "\n\n" +
		"🔴 <b>DO NOT SEND FUNDS.</b> This is a high-risk transaction and could be a scam."
}

func usageText(command, args string) string {
	return "ℹ️ <b>Usage:</b> <code>" + command + " " + args + "</code>"
}

func alreadyExistsText(username string) string {
	return "⚠️ <b>Already Exists</b>\n@" + format.EscapeHTML(username) + " is already on the admin list."
}

func adminAddedText(username string) string {
	return "✅ <b>Admin Added</b>\n\n" +
		"<code>@" + format.EscapeHTML(username) + "</code> is now a regular admin.\n\n" +
		"<b>Action Required:</b> They must start a private chat with me (/start) to link their account and receive commands."
}

func adminNotFoundText(username string) string {
	return "❓ <b>Admin Not Found</b>\nThe username @" + format.EscapeHTML(username) + " is not in our database."
}

const ownerRemoveBlockedText = "🛡️ <b>Action Blocked</b>\nThe bot owner cannot be removed."

const ownerDemoteBlockedText = "🛡️ <b>Action Blocked</b>\nThe bot owner cannot be demoted."

func adminRemovedText(username string) string {
	return "🗑️ <b>Admin Removed</b>\n\n@" + format.EscapeHTML(username) + " has been successfully removed from the admin list."
}

func alreadySuperAdminText(username string) string {
	return "⚠️ <b>No Change</b>\n@" + format.EscapeHTML(username) + " is already a Super Admin."
}

func alreadyRegularAdminText(username string) string {
	return "⚠️ <b>No Change</b>\n@" + format.EscapeHTML(username) + " is already a regular Admin."
}

func promotedText(username string) string {
	return "🚀 <b>Promotion Successful</b>\n\n@" + format.EscapeHTML(username) + " has been promoted to <b>Super Admin</b>."
}

func demotedText(username string) string {
	return "📉 <b>Demotion Successful</b>\n\n@" + format.EscapeHTML(username) + " has been demoted to a regular <b>Admin</b>."
}

func paymentUpdatedText(method roster.PaymentMethod, username, value string) string {
	emoji := "💰"
	if method == roster.MethodUPI {
		emoji = "💳"
	}
	return "✅ <b>Payment Info Updated</b>\n\n" +
		emoji + " The " + strings.ToUpper(method.String()) + " for <b>@" + format.EscapeHTML(username) + "</b> has been set to:\n" +
		format.Code(value)
}

func paymentFailureText(method roster.PaymentMethod) string {
	return "⚙️ Failed to set " + strings.ToUpper(method.String()) + " details due to an internal error."
}
